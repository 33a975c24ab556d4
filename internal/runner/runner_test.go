package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
	"github.com/soar/padcam/orbit"
)

// pumped connects queued pads when pumped, like a real backend does.
type pumped struct {
	*gamepad.Virtual
	pumps   int
	pending map[int]gamepad.Pad
}

func newPumped() *pumped {
	return &pumped{
		Virtual: gamepad.NewVirtual(),
		pending: make(map[int]gamepad.Pad),
	}
}

func (p *pumped) Pump() {
	p.pumps++
	for index, pad := range p.pending {
		p.Connect(index, pad)
		delete(p.pending, index)
	}
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	src := newPumped()
	cam := orbit.New()
	c := controls.New(cam, src, controls.WithLogger(zap.NewNop()))

	params := make(chan controls.Params, 2)
	changes := make(chan gamepad.State, 1)
	r := New(src, c, WithParams(params), WithChanges(changes), WithLogger(zap.NewNop()))

	pad := gamepad.NewPad()
	pad.Buttons[gamepad.ButtonRightBumper] = gamepad.Button{Pressed: true, Value: 1}
	src.pending[0] = pad

	p := controls.DefaultParams()
	p.ElevateDelta = 0.5
	params <- controls.DefaultParams()
	params <- p

	assert.True(r.Step(0.016))
	assert.Equal(1, src.pumps)
	assert.True(c.HasGamepad(), "connected during pump")
	assert.Equal(p, c.Params(), "latest params win")
	assert.InDelta(0.5, cam.TargetEnd().Y, 1e-9)

	state := <-changes
	assert.True(state.Connected)
	assert.True(state.Bumpers.Right)

	// full channel drops the snapshot instead of blocking
	changes <- gamepad.State{}
	r.Step(0.016)
	r.Step(0.016)
	assert.Equal(uint64(3), r.Ticks())
}

func TestRun(t *testing.T) {
	src := newPumped()
	c := controls.New(orbit.New(), src, controls.WithLogger(zap.NewNop()))
	changes := make(chan gamepad.State, 1)
	r := New(src, c, WithChanges(changes), WithLogger(zap.NewNop()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestForward(t *testing.T) {
	assert := assert.New(t)

	src := gamepad.NewVirtual()
	c := controls.New(orbit.New(), src, controls.WithLogger(zap.NewNop()))

	out := make(chan events.Event, 8)
	cancel, err := Forward(zap.NewNop(), c.Events(), out)
	require.NoError(t, err)

	pad := gamepad.NewPad()
	pad.Buttons[gamepad.ButtonX] = gamepad.Button{Pressed: true, Value: 1}
	src.Connect(0, pad)
	c.Update(0.016)
	c.Update(0.016)
	src.Set(0, gamepad.NewPad())
	c.Update(0.016)

	require.Len(t, out, 2, "on events are not forwarded")
	assert.Equal(events.Event{Channel: events.X, Kind: events.Before}, <-out)
	assert.Equal(events.Event{Channel: events.X, Kind: events.After}, <-out)

	cancel()
	for _, ch := range events.Channels {
		assert.Zero(c.Events().Channel(ch).Len(events.Before))
		assert.Zero(c.Events().Channel(ch).Len(events.After))
	}

	// a full channel never blocks the tick
	full := make(chan events.Event)
	_, err = Forward(zap.NewNop(), c.Events(), full)
	require.NoError(t, err)
	src.Set(0, pad)
	assert.NotPanics(func() { c.Update(0.016) })
}
