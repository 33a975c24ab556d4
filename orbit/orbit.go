// Package orbit is a minimal camera-control engine: a camera orbiting a
// target on a sphere. Moves are applied immediately; enableTransition is
// accepted for interface compatibility and ignored.
package orbit

import (
	"math"

	"github.com/golang/geo/r3"
)

const polarEpsilon = 1e-6

var up = r3.Vector{X: 0, Y: 1, Z: 0}

// done is returned by every motion since moves complete immediately.
var done = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Controls orbits a camera around a target point. The zero value is not
// usable; construct with New.
type Controls struct {
	target  r3.Vector
	radius  float64
	azimuth float64
	polar   float64

	minRadius float64
	maxRadius float64
	minPolar  float64
	maxPolar  float64

	matrix [16]float64
	dirty  bool
}

// Option configures Controls.
type Option func(*Controls)

// WithTarget sets the look-at point.
func WithTarget(x, y, z float64) Option {
	return func(c *Controls) {
		c.target = r3.Vector{X: x, Y: y, Z: z}
	}
}

// WithRadius sets the distance from the target.
func WithRadius(radius float64) Option {
	return func(c *Controls) {
		c.radius = radius
	}
}

// WithAzimuth sets the horizontal angle in radians. 0 places the camera on
// the +Z side of the target.
func WithAzimuth(azimuth float64) Option {
	return func(c *Controls) {
		c.azimuth = azimuth
	}
}

// WithPolar sets the angle from the up axis in radians. Pi/2 is level with
// the target.
func WithPolar(polar float64) Option {
	return func(c *Controls) {
		c.polar = polar
	}
}

// WithRadiusBounds limits dolly.
func WithRadiusBounds(min, max float64) Option {
	return func(c *Controls) {
		c.minRadius = min
		c.maxRadius = max
	}
}

// WithPolarBounds limits vertical rotation.
func WithPolarBounds(min, max float64) Option {
	return func(c *Controls) {
		c.minPolar = min
		c.maxPolar = max
	}
}

func New(opts ...Option) *Controls {
	c := &Controls{
		radius:    5,
		polar:     math.Pi / 2,
		minRadius: 0.1,
		maxRadius: math.Inf(1),
		minPolar:  0,
		maxPolar:  math.Pi,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.radius = clamp(c.radius, c.minRadius, c.maxRadius)
	c.polar = c.clampPolar(c.polar)
	c.changed()

	return c
}

// Rotate adds azimuth and polar angles in radians.
func (c *Controls) Rotate(azimuth, polar float64, enableTransition bool) <-chan struct{} {
	c.azimuth += azimuth
	c.polar = c.clampPolar(c.polar + polar)
	c.changed()
	return done
}

// Dolly moves the camera towards the target by distance. Negative distance
// moves away.
func (c *Controls) Dolly(distance float64, enableTransition bool) <-chan struct{} {
	c.radius = clamp(c.radius-distance, c.minRadius, c.maxRadius)
	c.changed()
	return done
}

// Forward moves the target and camera along the camera's heading, parallel
// to the ground.
func (c *Controls) Forward(distance float64, enableTransition bool) <-chan struct{} {
	right := r3.Vector{X: c.matrix[0], Y: c.matrix[1], Z: c.matrix[2]}
	heading := up.Cross(right).Normalize()
	c.target = c.target.Add(heading.Mul(distance))
	c.changed()
	return done
}

// Elevate moves the target and camera along the up axis.
func (c *Controls) Elevate(distance float64, enableTransition bool) <-chan struct{} {
	c.target = c.target.Add(up.Mul(distance))
	c.changed()
	return done
}

// MoveTo moves the target to (x, y, z), keeping the camera's offset.
func (c *Controls) MoveTo(x, y, z float64, enableTransition bool) <-chan struct{} {
	c.target = r3.Vector{X: x, Y: y, Z: z}
	c.changed()
	return done
}

// Update reports whether the camera changed since the previous call.
func (c *Controls) Update(delta float64) bool {
	updated := c.dirty
	c.dirty = false
	return updated
}

// CameraMatrix returns the camera's local to world transform, column major.
func (c *Controls) CameraMatrix() [16]float64 {
	return c.matrix
}

// TargetEnd returns the look-at point.
func (c *Controls) TargetEnd() r3.Vector {
	return c.target
}

// Position returns the camera position.
func (c *Controls) Position() r3.Vector {
	sin := math.Sin(c.polar)
	offset := r3.Vector{
		X: c.radius * sin * math.Sin(c.azimuth),
		Y: c.radius * math.Cos(c.polar),
		Z: c.radius * sin * math.Cos(c.azimuth),
	}
	return c.target.Add(offset)
}

// Radius returns the distance from the target.
func (c *Controls) Radius() float64 {
	return c.radius
}

// Angles returns the azimuth and polar angles in radians.
func (c *Controls) Angles() (azimuth, polar float64) {
	return c.azimuth, c.polar
}

func (c *Controls) changed() {
	eye := c.Position()

	z := eye.Sub(c.target).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)

	c.matrix = [16]float64{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		eye.X, eye.Y, eye.Z, 1,
	}
	c.dirty = true
}

func (c *Controls) clampPolar(polar float64) float64 {
	return clamp(polar, math.Max(c.minPolar, polarEpsilon), math.Min(c.maxPolar, math.Pi-polarEpsilon))
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
