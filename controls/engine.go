package controls

import (
	"math"

	"go.uber.org/zap"

	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
)

// mover receives the motion commands issued by the engine.
type mover interface {
	Rotate(azimuth, polar float64, enableTransition bool) <-chan struct{}
	Forward(distance float64, enableTransition bool) <-chan struct{}
	Sideways(distance float64, enableTransition bool) <-chan struct{}
	Dolly(distance float64, enableTransition bool) <-chan struct{}
	Elevate(distance float64, enableTransition bool) <-chan struct{}
}

// engine turns pad samples into state, channel events and motion.
type engine struct {
	log      *zap.Logger
	registry *events.Registry
	state    gamepad.State
	active   map[events.Channel]bool
}

func newEngine(log *zap.Logger, registry *events.Registry) *engine {
	return &engine{
		log:      log,
		registry: registry,
		active:   make(map[events.Channel]bool, len(events.Channels)),
	}
}

// apply runs one tick for a sampled pad.
func (e *engine) apply(p Params, pad gamepad.Pad, m mover) {
	e.state.Sample(pad)
	e.fire(p)
	e.move(p, m)
}

// release ends every active channel and forgets the last sample.
func (e *engine) release() {
	for _, ch := range events.Channels {
		if e.active[ch] {
			e.dispatch(ch, events.After)
		}
	}
	clear(e.active)
	e.state = gamepad.State{}
}

func (e *engine) fire(p Params) {
	for _, ch := range events.Channels {
		now := channelActive(ch, p, &e.state)
		was := e.active[ch]
		e.active[ch] = now

		switch {
		case now && !was:
			e.dispatch(ch, events.Before)
			e.dispatch(ch, events.On)
		case now:
			e.dispatch(ch, events.On)
		case was:
			e.dispatch(ch, events.After)
		}
	}
}

func (e *engine) dispatch(ch events.Channel, kind events.Kind) {
	if err := e.registry.Dispatch(ch, kind); err != nil {
		e.log.Warn("event listener failed",
			zap.String("channel", string(ch)),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func (e *engine) move(p Params, m mover) {
	s := &e.state

	right := s.Sticks.Right.Position
	if stickActive(right, p.RightStickXThreshold, p.RightStickYThreshold) {
		m.Rotate(-right.X*p.RotateDelta, -right.Y*p.RotateDelta, true)
	}

	left := s.Sticks.Left.Position
	if stickActive(left, p.LeftStickXThreshold, p.LeftStickYThreshold) {
		m.Forward(-left.Y*p.ForwardDelta, true)
		m.Sideways(left.X*p.SidewaysDelta, true)
	}

	if s.Triggers.Right > TriggerFloor {
		m.Dolly(s.Triggers.Right*p.DollyDelta, true)
	}
	if s.Triggers.Left > TriggerFloor {
		m.Dolly(-s.Triggers.Left*p.DollyDelta, true)
	}

	if s.Bumpers.Right {
		m.Elevate(p.ElevateDelta, true)
	}
	if s.Bumpers.Left {
		m.Elevate(-p.ElevateDelta, true)
	}
}

func stickActive(v gamepad.Vector, thresholdX, thresholdY float64) bool {
	return math.Abs(v.X) > thresholdX || math.Abs(v.Y) > thresholdY
}

// channelActive reports the level of ch for this tick. Sticks are active when
// pressed or pushed out of their deadzone.
func channelActive(ch events.Channel, p Params, s *gamepad.State) bool {
	switch ch {
	case events.A:
		return s.Buttons.A
	case events.B:
		return s.Buttons.B
	case events.X:
		return s.Buttons.X
	case events.Y:
		return s.Buttons.Y
	case events.Up:
		return s.Dpad.Up
	case events.Down:
		return s.Dpad.Down
	case events.Left:
		return s.Dpad.Left
	case events.Right:
		return s.Dpad.Right
	case events.LeftTrigger:
		return s.Triggers.Left > p.LeftTriggerThreshold
	case events.RightTrigger:
		return s.Triggers.Right > p.RightTriggerThreshold
	case events.LeftBumper:
		return s.Bumpers.Left
	case events.RightBumper:
		return s.Bumpers.Right
	case events.LeftStick:
		return s.Sticks.Left.Pressed ||
			stickActive(s.Sticks.Left.Position, p.LeftStickXThreshold, p.LeftStickYThreshold)
	case events.RightStick:
		return s.Sticks.Right.Pressed ||
			stickActive(s.Sticks.Right.Position, p.RightStickXThreshold, p.RightStickYThreshold)
	case events.Start:
		return s.Buttons.Start
	case events.Back:
		return s.Buttons.Back
	}
	return false
}
