// Package controls drives a camera-control engine from a gamepad.
//
// Controls wraps a CameraControls value. Every call to Update samples the
// bound gamepad, refreshes the State snapshot, fires the event channels and
// issues motion commands before advancing the wrapped engine:
//
//   - right stick rotates the camera
//   - left stick moves forward/backward and sideways
//   - right trigger dollies in, left trigger dollies out
//   - right bumper elevates, left bumper lowers
//
// Motion is level triggered: holding a stick, trigger or bumper moves the
// camera on every tick, scaled by the held value and the Params deltas.
package controls

import (
	"go.uber.org/zap"

	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
)

// Controls is a CameraControls driven by a gamepad.
//
// The most recently connected gamepad is bound, unless WithGamepadIndex pins
// one. Only a disconnect of the bound gamepad unbinds it; other devices going
// away are ignored.
type Controls struct {
	CameraControls

	log       *zap.Logger
	source    gamepad.Source
	params    Params
	registry  *events.Registry
	engine    *engine
	index     int
	bound     bool
	pinned    bool
	disposers []func()
}

// Option configures Controls.
type Option func(*Controls)

// WithParams replaces the default mapping params.
func WithParams(p Params) Option {
	return func(c *Controls) {
		c.params = p
	}
}

// WithRegistry shares an event registry instead of creating one.
func WithRegistry(r *events.Registry) Option {
	return func(c *Controls) {
		c.registry = r
	}
}

// WithGamepadIndex binds index from the start and ignores connect
// notifications for any other device. The binding is dropped while index is
// disconnected and restored when it reconnects.
func WithGamepadIndex(index int) Option {
	return func(c *Controls) {
		c.index = index
		c.bound = true
		c.pinned = true
	}
}

// WithLogger sets the logger. The default is zap.L().
func WithLogger(log *zap.Logger) Option {
	return func(c *Controls) {
		c.log = log
	}
}

// New wraps camera and binds to gamepads reported by source.
func New(camera CameraControls, source gamepad.Source, opts ...Option) *Controls {
	c := &Controls{
		CameraControls: camera,
		log:            zap.L(),
		source:         source,
		params:         DefaultParams(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.registry == nil {
		c.registry = events.NewRegistry()
	}
	c.log = c.log.With(zap.String("component", "controls"))
	c.engine = newEngine(c.log, c.registry)

	c.disposers = append(c.disposers,
		source.OnConnect(c.onConnect),
		source.OnDisconnect(c.onDisconnect),
	)

	return c
}

func (c *Controls) onConnect(index int) {
	if c.pinned && index != c.index {
		c.log.Debug("gamepad ignored, another index is pinned",
			zap.Int("index", index), zap.Int("pinned", c.index))
		return
	}
	c.log.Info("gamepad connected", zap.Int("index", index))
	c.bind(index)
}

func (c *Controls) onDisconnect(index int) {
	if !c.bound || index != c.index {
		return
	}
	c.log.Info("gamepad disconnected", zap.Int("index", index))
	c.unbind()
}

func (c *Controls) bind(index int) {
	if c.bound && c.index != index {
		c.engine.release()
	}
	c.index = index
	c.bound = true
}

func (c *Controls) unbind() {
	c.bound = false
	c.engine.release()
}

// HasGamepad reports whether a gamepad is bound. A disconnect for an index
// other than the bound one leaves the binding in place.
func (c *Controls) HasGamepad() bool {
	return c.bound
}

// GamepadIndex returns the bound gamepad index.
func (c *Controls) GamepadIndex() (int, bool) {
	return c.index, c.bound
}

// SetGamepadIndex binds gamepad index without waiting for a connect
// notification. A later connect still rebinds; use WithGamepadIndex to pin.
func (c *Controls) SetGamepadIndex(index int) {
	c.bind(index)
}

// Params returns the mapping params in use.
func (c *Controls) Params() Params {
	return c.params
}

// SetParams replaces the mapping params. Call it between ticks.
func (c *Controls) SetParams(p Params) {
	c.params = p
}

// State returns a copy of the last sampled gamepad state.
func (c *Controls) State() gamepad.State {
	return c.engine.state
}

// Events returns the event registry.
func (c *Controls) Events() *events.Registry {
	return c.registry
}

// Update applies gamepad input and then advances the camera engine by delta
// seconds. It returns true if the scene needs to be redrawn.
func (c *Controls) Update(delta float64) bool {
	if c.bound {
		if pad, ok := c.source.Pad(c.index); ok {
			c.engine.apply(c.params, pad, c)
		}
	}
	return c.CameraControls.Update(delta)
}

// Sideways moves the camera target along the camera's local X axis. Negative
// distance moves left.
func (c *Controls) Sideways(distance float64, enableTransition bool) <-chan struct{} {
	offset := Column(c.CameraMatrix(), 0).Mul(distance)
	to := c.TargetEnd().Add(offset)
	return c.MoveTo(to.X, to.Y, to.Z, enableTransition)
}

// Dispose releases the source registrations. It is safe to call more than
// once.
func (c *Controls) Dispose() {
	for i := len(c.disposers) - 1; i >= 0; i-- {
		c.disposers[i]()
	}
	c.disposers = nil
}
