// Package sdlpad is a gamepad.Source backed by the SDL3 joystick API.
//
// SDL must be driven from a single OS thread: Open, Pump, Pad and Close are
// all expected to be called from the goroutine running the tick loop, which
// must have called runtime.LockOSThread.
package sdlpad

import (
	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soar/padcam/gamepad"
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *gamepad.DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Source reads gamepads from SDL3 and reports connect/disconnect
// notifications while pumped.
type Source struct {
	gamepad.Notifier

	log        *zap.Logger
	joysticks  map[sdl.JoystickID]*joystickInfo
	enumerated bool
}

// Open initializes the SDL joystick subsystem.
func Open(log *zap.Logger) (*Source, error) {
	if log == nil {
		log = zap.L()
	}

	if !sdl.Init(sdl.InitJoystick) {
		return nil, errors.Errorf("SDL init failed: %s", sdl.GetError())
	}

	log = log.With(zap.String("component", "sdlpad"))
	log.Info("SDL3 joystick subsystem initialized")

	return &Source{
		log:       log,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}, nil
}

// Pump drains pending SDL events, opening and closing joysticks and firing
// the matching notifications. Joysticks already plugged at Open are reported
// on the first call.
func (s *Source) Pump() {
	if !s.enumerated {
		s.enumerated = true
		for _, id := range sdl.GetJoysticks() {
			s.openJoystick(id)
		}
	}

	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			s.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			s.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown:
			be := event.JButton()
			s.log.Debug("button down", zap.Uint8("index", be.Button), zap.Uint32("joystick", uint32(be.Which)))

		case sdl.EventJoystickButtonUp:
			be := event.JButton()
			s.log.Debug("button up", zap.Uint8("index", be.Button), zap.Uint32("joystick", uint32(be.Which)))
		}
	}
}

// Pad implements gamepad.Source.
func (s *Source) Pad(index int) (gamepad.Pad, bool) {
	info, exists := s.joysticks[sdl.JoystickID(index)]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return gamepad.Pad{}, false
	}
	return info.mapping.Read(reader{info.joystick}), true
}

// Close closes every opened joystick and shuts SDL down.
func (s *Source) Close() {
	for id, info := range s.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(s.joysticks, id)
	}
	sdl.Quit()
}

func (s *Source) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := s.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		s.log.Warn("failed to open joystick",
			zap.Uint32("id", uint32(instanceID)),
			zap.String("error", sdl.GetError()),
		)
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := gamepad.GetMapping(vendorID, productID)

	s.joysticks[jsID] = &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}

	s.log.Info("joystick connected",
		zap.String("name", name),
		zap.String("mapping", mapping.Name),
		zap.Uint16("vendor", vendorID),
		zap.Uint16("product", productID),
		zap.Int32("axes", sdl.GetNumJoystickAxes(js)),
		zap.Int32("buttons", sdl.GetNumJoystickButtons(js)),
		zap.Int32("hats", sdl.GetNumJoystickHats(js)),
	)

	s.Connected(int(jsID))
}

func (s *Source) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := s.joysticks[instanceID]
	if !exists {
		return
	}

	s.log.Info("joystick disconnected", zap.String("name", info.name))
	sdl.CloseJoystick(info.joystick)
	delete(s.joysticks, instanceID)

	s.Disconnected(int(instanceID))
}

// reader adapts an SDL joystick to gamepad.RawReader.
type reader struct {
	js *sdl.Joystick
}

func (r reader) Axis(index int32) int16 {
	return sdl.GetJoystickAxis(r.js, index)
}

func (r reader) Button(index int32) bool {
	return sdl.GetJoystickButton(r.js, index)
}

func (r reader) NumButtons() int32 {
	return sdl.GetNumJoystickButtons(r.js)
}

func (r reader) NumHats() int32 {
	return sdl.GetNumJoystickHats(r.js)
}

func (r reader) Hat(index int32) uint8 {
	return sdl.GetJoystickHat(r.js, index)
}
