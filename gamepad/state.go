package gamepad

import "math"

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type StickState struct {
	Position Vector `json:"position"`
	Pressed  bool   `json:"pressed"`
}

type ButtonState struct {
	A     bool `json:"a"`
	B     bool `json:"b"`
	X     bool `json:"x"`
	Y     bool `json:"y"`
	Back  bool `json:"back"`
	Start bool `json:"start"`
}

type DpadState struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

type BumpersState struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

type SticksState struct {
	Left  StickState `json:"left"`
	Right StickState `json:"right"`
}

type TriggersState struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// State is the last sampled value of every tracked control.
type State struct {
	Connected bool          `json:"connected"`
	Buttons   ButtonState   `json:"buttons"`
	Dpad      DpadState     `json:"dpad"`
	Bumpers   BumpersState  `json:"bumpers"`
	Sticks    SticksState   `json:"sticks"`
	Triggers  TriggersState `json:"triggers"`
}

// Sample overwrites every field of s from a standard layout pad.
func (s *State) Sample(p Pad) {
	s.Connected = true

	s.Triggers.Right = p.Button(ButtonRightTrigger).Value
	s.Triggers.Left = p.Button(ButtonLeftTrigger).Value
	s.Bumpers.Right = p.Button(ButtonRightBumper).Pressed
	s.Bumpers.Left = p.Button(ButtonLeftBumper).Pressed

	s.Buttons.A = p.Button(ButtonA).Pressed
	s.Buttons.B = p.Button(ButtonB).Pressed
	s.Buttons.X = p.Button(ButtonX).Pressed
	s.Buttons.Y = p.Button(ButtonY).Pressed
	s.Buttons.Back = p.Button(ButtonBack).Pressed
	s.Buttons.Start = p.Button(ButtonStart).Pressed

	s.Dpad.Up = p.Button(ButtonDpadUp).Pressed
	s.Dpad.Down = p.Button(ButtonDpadDown).Pressed
	s.Dpad.Left = p.Button(ButtonDpadLeft).Pressed
	s.Dpad.Right = p.Button(ButtonDpadRight).Pressed

	s.Sticks.Right.Pressed = p.Button(ButtonRightStick).Pressed
	s.Sticks.Right.Position.X = p.Axis(AxisRightX)
	s.Sticks.Right.Position.Y = p.Axis(AxisRightY)

	s.Sticks.Left.Pressed = p.Button(ButtonLeftStick).Pressed
	s.Sticks.Left.Position.X = p.Axis(AxisLeftX)
	s.Sticks.Left.Position.Y = p.Axis(AxisLeftY)
}

type DeltaChanges struct {
	Connected *bool          `json:"connected,omitempty"`
	Buttons   *ButtonState   `json:"buttons,omitempty"`
	Dpad      *DpadState     `json:"dpad,omitempty"`
	Bumpers   *BumpersState  `json:"bumpers,omitempty"`
	Sticks    *SticksState   `json:"sticks,omitempty"`
	Triggers  *TriggersState `json:"triggers,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.Buttons == nil &&
		d.Dpad == nil &&
		d.Bumpers == nil &&
		d.Sticks == nil &&
		d.Triggers == nil
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// ComputeDelta returns the groups of new_ that differ from old. Analog values
// closer than analogThreshold count as equal.
func ComputeDelta(old, new_ State) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Connected != new_.Connected {
		d.Connected = &new_.Connected
	}
	if old.Buttons != new_.Buttons {
		d.Buttons = &new_.Buttons
	}
	if old.Dpad != new_.Dpad {
		d.Dpad = &new_.Dpad
	}
	if old.Bumpers != new_.Bumpers {
		d.Bumpers = &new_.Bumpers
	}

	if !floatEqual(old.Sticks.Left.Position.X, new_.Sticks.Left.Position.X) ||
		!floatEqual(old.Sticks.Left.Position.Y, new_.Sticks.Left.Position.Y) ||
		old.Sticks.Left.Pressed != new_.Sticks.Left.Pressed ||
		!floatEqual(old.Sticks.Right.Position.X, new_.Sticks.Right.Position.X) ||
		!floatEqual(old.Sticks.Right.Position.Y, new_.Sticks.Right.Position.Y) ||
		old.Sticks.Right.Pressed != new_.Sticks.Right.Pressed {
		d.Sticks = &new_.Sticks
	}

	if !floatEqual(old.Triggers.Left, new_.Triggers.Left) ||
		!floatEqual(old.Triggers.Right, new_.Triggers.Right) {
		d.Triggers = &new_.Triggers
	}

	return d
}
