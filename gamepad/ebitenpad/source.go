// Package ebitenpad is a gamepad.Source backed by ebiten's standard gamepad
// layout. Pump must be called from ebiten.Game.Update.
package ebitenpad

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/soar/padcam/gamepad"
)

var standardAxes = [gamepad.NumAxes]ebiten.StandardGamepadAxis{
	gamepad.AxisLeftX:  ebiten.StandardGamepadAxisLeftStickHorizontal,
	gamepad.AxisLeftY:  ebiten.StandardGamepadAxisLeftStickVertical,
	gamepad.AxisRightX: ebiten.StandardGamepadAxisRightStickHorizontal,
	gamepad.AxisRightY: ebiten.StandardGamepadAxisRightStickVertical,
}

var standardButtons = [gamepad.NumButtons]ebiten.StandardGamepadButton{
	gamepad.ButtonA:            ebiten.StandardGamepadButtonRightBottom,
	gamepad.ButtonB:            ebiten.StandardGamepadButtonRightRight,
	gamepad.ButtonX:            ebiten.StandardGamepadButtonRightLeft,
	gamepad.ButtonY:            ebiten.StandardGamepadButtonRightTop,
	gamepad.ButtonLeftBumper:   ebiten.StandardGamepadButtonFrontTopLeft,
	gamepad.ButtonRightBumper:  ebiten.StandardGamepadButtonFrontTopRight,
	gamepad.ButtonLeftTrigger:  ebiten.StandardGamepadButtonFrontBottomLeft,
	gamepad.ButtonRightTrigger: ebiten.StandardGamepadButtonFrontBottomRight,
	gamepad.ButtonBack:         ebiten.StandardGamepadButtonCenterLeft,
	gamepad.ButtonStart:        ebiten.StandardGamepadButtonCenterRight,
	gamepad.ButtonLeftStick:    ebiten.StandardGamepadButtonLeftStick,
	gamepad.ButtonRightStick:   ebiten.StandardGamepadButtonRightStick,
	gamepad.ButtonDpadUp:       ebiten.StandardGamepadButtonLeftTop,
	gamepad.ButtonDpadDown:     ebiten.StandardGamepadButtonLeftBottom,
	gamepad.ButtonDpadLeft:     ebiten.StandardGamepadButtonLeftLeft,
	gamepad.ButtonDpadRight:    ebiten.StandardGamepadButtonLeftRight,
	gamepad.ButtonHome:         ebiten.StandardGamepadButtonCenterCenter,
}

// Source reports ebiten gamepads that have a standard layout.
type Source struct {
	gamepad.Notifier

	log   *zap.Logger
	buf   []ebiten.GamepadID
	known map[ebiten.GamepadID]struct{}
}

func New(log *zap.Logger) *Source {
	if log == nil {
		log = zap.L()
	}
	return &Source{
		log:   log.With(zap.String("component", "ebitenpad")),
		known: make(map[ebiten.GamepadID]struct{}),
	}
}

// Pump fires notifications for gamepads connected or disconnected since the
// previous tick.
func (s *Source) Pump() {
	s.buf = inpututil.AppendJustConnectedGamepadIDs(s.buf[:0])
	for _, id := range s.buf {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			s.log.Info("ignoring gamepad without standard layout",
				zap.Int("id", int(id)),
				zap.String("name", ebiten.GamepadName(id)),
			)
			continue
		}
		s.known[id] = struct{}{}
		s.log.Info("gamepad connected",
			zap.Int("id", int(id)),
			zap.String("name", ebiten.GamepadName(id)),
		)
		s.Connected(int(id))
	}

	for id := range s.known {
		if inpututil.IsGamepadJustDisconnected(id) {
			delete(s.known, id)
			s.log.Info("gamepad disconnected", zap.Int("id", int(id)))
			s.Disconnected(int(id))
		}
	}
}

// Pad implements gamepad.Source.
func (s *Source) Pad(index int) (gamepad.Pad, bool) {
	id := ebiten.GamepadID(index)
	if _, ok := s.known[id]; !ok {
		return gamepad.Pad{}, false
	}

	pad := gamepad.NewPad()
	for i, axis := range standardAxes {
		pad.Axes[i] = ebiten.StandardGamepadAxisValue(id, axis)
	}
	for i, button := range standardButtons {
		pad.Buttons[i] = gamepad.Button{
			Pressed: ebiten.IsStandardGamepadButtonPressed(id, button),
			Value:   ebiten.StandardGamepadButtonValue(id, button),
		}
	}
	return pad, true
}
