package tray

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPNG(t *testing.T) {
	data, err := renderPNG()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())

	_, _, _, centre := img.At(iconSize/2, iconSize/2).RGBA()
	_, _, _, corner := img.At(0, 0).RGBA()
	assert.NotZero(t, centre)
	assert.Zero(t, corner)
}

func TestWrapICO(t *testing.T) {
	assert := assert.New(t)

	payload := []byte("\x89PNG fake")
	ico := wrapICO(payload, 32)

	require.Len(t, ico, 22+len(payload))
	assert.Equal(uint16(1), binary.LittleEndian.Uint16(ico[2:]), "type icon")
	assert.Equal(uint16(1), binary.LittleEndian.Uint16(ico[4:]), "one image")
	assert.Equal(byte(32), ico[6])
	assert.Equal(uint32(len(payload)), binary.LittleEndian.Uint32(ico[14:]))
	assert.Equal(uint32(22), binary.LittleEndian.Uint32(ico[18:]))
	assert.Equal(payload, ico[22:])
}
