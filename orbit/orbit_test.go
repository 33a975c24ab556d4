package orbit

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func assertVector(t *testing.T, want, got r3.Vector) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-9, "z")
}

func TestDefaults(t *testing.T) {
	assert := assert.New(t)

	c := New()
	assert.Equal(5.0, c.Radius())
	assertVector(t, r3.Vector{}, c.TargetEnd())
	assertVector(t, r3.Vector{Z: 5}, c.Position())

	m := c.CameraMatrix()
	assertVector(t, r3.Vector{X: 1}, r3.Vector{X: m[0], Y: m[1], Z: m[2]})
	assertVector(t, r3.Vector{Y: 1}, r3.Vector{X: m[4], Y: m[5], Z: m[6]})
	assertVector(t, r3.Vector{Z: 1}, r3.Vector{X: m[8], Y: m[9], Z: m[10]})
	assertVector(t, r3.Vector{Z: 5}, r3.Vector{X: m[12], Y: m[13], Z: m[14]})
	assert.Equal(1.0, m[15])
}

func TestMotionsCompleteImmediately(t *testing.T) {
	c := New()

	for _, ch := range []<-chan struct{}{
		c.Rotate(0.1, 0, true),
		c.Forward(1, true),
		c.Dolly(1, true),
		c.Elevate(1, true),
		c.MoveTo(0, 0, 0, true),
	} {
		select {
		case <-ch:
		default:
			t.Fatal("motion channel not closed")
		}
	}
}

func TestUpdateReportsChanges(t *testing.T) {
	assert := assert.New(t)

	c := New()
	assert.True(c.Update(0.016))
	assert.False(c.Update(0.016))

	c.Elevate(1, false)
	assert.True(c.Update(0.016))
	assert.False(c.Update(0.016))
}

func TestForwardIsLevel(t *testing.T) {
	c := New(WithPolar(math.Pi / 4))

	c.Forward(2, true)
	assertVector(t, r3.Vector{Z: -2}, c.TargetEnd())

	c.Rotate(math.Pi/2, 0, true)
	c.Forward(1, true)
	assertVector(t, r3.Vector{X: -1, Z: -2}, c.TargetEnd())
}

func TestElevateAndMoveTo(t *testing.T) {
	c := New(WithTarget(1, 2, 3))

	c.Elevate(-0.5, true)
	assertVector(t, r3.Vector{X: 1, Y: 1.5, Z: 3}, c.TargetEnd())
	assertVector(t, r3.Vector{X: 1, Y: 1.5, Z: 8}, c.Position())

	c.MoveTo(0, 0, 0, true)
	assertVector(t, r3.Vector{}, c.TargetEnd())
	assertVector(t, r3.Vector{Z: 5}, c.Position())
}

func TestDollyBounds(t *testing.T) {
	assert := assert.New(t)

	c := New(WithRadius(3), WithRadiusBounds(1, 4))

	c.Dolly(1, true)
	assert.InDelta(2, c.Radius(), 1e-9)

	c.Dolly(5, true)
	assert.Equal(1.0, c.Radius())

	c.Dolly(-10, true)
	assert.Equal(4.0, c.Radius())
}

func TestRotateClampsPolar(t *testing.T) {
	assert := assert.New(t)

	c := New()
	c.Rotate(0, 10, true)
	_, polar := c.Angles()
	assert.InDelta(math.Pi, polar, 1e-5)
	assert.Less(polar, math.Pi)

	c = New(WithPolarBounds(math.Pi/4, math.Pi/2))
	c.Rotate(0.5, -3, true)
	azimuth, polar := c.Angles()
	assert.Equal(0.5, azimuth)
	assert.Equal(math.Pi/4, polar)
}
