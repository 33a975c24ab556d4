// Package gamepad models a gamepad the way the host platform reports it: an
// ordered axis array and an ordered button array in the standard layout, plus
// the connect/disconnect notifications that bind a device to a camera.
package gamepad

// Axis indices in the standard layout.
const (
	AxisLeftX = iota
	AxisLeftY
	AxisRightX
	AxisRightY

	NumAxes
)

// Button indices in the standard layout.
const (
	ButtonA = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftBumper
	ButtonRightBumper
	ButtonLeftTrigger
	ButtonRightTrigger
	ButtonBack
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
	ButtonHome

	NumButtons
)

// Button is the sampled value of one button. Digital buttons report Value 0
// or 1; analog triggers report the travel in [0,1].
type Button struct {
	Pressed bool    `json:"pressed"`
	Value   float64 `json:"value"`
}

// Pad is one sample of a device.
type Pad struct {
	Axes    []float64 `json:"axes"`
	Buttons []Button  `json:"buttons"`
}

// NewPad returns a zero pad sized for the standard layout.
func NewPad() Pad {
	return Pad{
		Axes:    make([]float64, NumAxes),
		Buttons: make([]Button, NumButtons),
	}
}

// Axis returns axis i, or 0 if the device reports fewer axes.
func (p Pad) Axis(i int) float64 {
	if i < 0 || i >= len(p.Axes) {
		return 0
	}
	return p.Axes[i]
}

// Button returns button i, or an unpressed button if the device reports fewer
// buttons.
func (p Pad) Button(i int) Button {
	if i < 0 || i >= len(p.Buttons) {
		return Button{}
	}
	return p.Buttons[i]
}

// Clone returns a deep copy of p.
func (p Pad) Clone() Pad {
	c := Pad{
		Axes:    make([]float64, len(p.Axes)),
		Buttons: make([]Button, len(p.Buttons)),
	}
	copy(c.Axes, p.Axes)
	copy(c.Buttons, p.Buttons)
	return c
}

// Source is the host platform's gamepad surface.
//
// OnConnect and OnDisconnect register callbacks for device notifications and
// return a func that removes the registration. Pad returns the current sample
// of device index, or false if the device is not reachable.
type Source interface {
	OnConnect(fn func(index int)) (cancel func())
	OnDisconnect(fn func(index int)) (cancel func())
	Pad(index int) (Pad, bool)
}
