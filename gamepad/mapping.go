package gamepad

import "math"

// AxisMapping defines how a raw joystick axis maps into the standard layout.
type AxisMapping struct {
	Index int32
	// Target is a standard axis index, or a trigger button index when
	// IsTrigger is set.
	Target    int
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw joystick button maps to a standard button.
type ButtonMapping struct {
	Index  int32
	Target int
}

// DeviceMapping holds the complete mapping for a specific device type.
type DeviceMapping struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// Hat bits as reported by SDL.
const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// TriggerPressThreshold is the trigger travel above which an analog trigger
// also reports Pressed.
const TriggerPressThreshold = 0.1

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// RawReader reads raw values from an opened joystick.
type RawReader interface {
	Axis(index int32) int16
	Button(index int32) bool
	NumButtons() int32
	NumHats() int32
	Hat(index int32) uint8
}

// Read samples r through m into a standard layout pad.
func (m *DeviceMapping) Read(r RawReader) Pad {
	pad := NewPad()

	for _, am := range m.Axes {
		raw := r.Axis(am.Index)
		if am.IsTrigger {
			val := NormalizeTrigger(raw, am.RawMin, am.RawMax)
			pad.Buttons[am.Target] = Button{
				Pressed: val > TriggerPressThreshold,
				Value:   val,
			}
			continue
		}

		val := NormalizeAxis(raw)
		if am.Invert {
			val = -val
		}
		pad.Axes[am.Target] = val
	}

	numButtons := r.NumButtons()
	for _, bm := range m.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		if r.Button(bm.Index) {
			pad.Buttons[bm.Target] = Button{Pressed: true, Value: 1}
		}
	}

	if m.HasHat && r.NumHats() > 0 {
		hat := r.Hat(0)
		setHat := func(target int, bit uint8) {
			if hat&bit != 0 {
				pad.Buttons[target] = Button{Pressed: true, Value: 1}
			}
		}
		setHat(ButtonDpadUp, HatUp)
		setHat(ButtonDpadRight, HatRight)
		setHat(ButtonDpadDown, HatDown)
		setHat(ButtonDpadLeft, HatLeft)
	}

	return pad
}

// Built-in mappings for common controllers. Stick Y axes keep the platform's
// sign: up is negative.

var xboxMapping = &DeviceMapping{
	Name: "xbox",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY},
		{Index: 4, Target: ButtonLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: ButtonRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLeftBumper},
		{Index: 5, Target: ButtonRightBumper},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonHome},
	},
	HasHat: true,
}

var playstationMapping = &DeviceMapping{
	Name: "playstation",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY},
		{Index: 4, Target: ButtonLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: ButtonRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},    // Cross
		{Index: 1, Target: ButtonB},    // Circle
		{Index: 2, Target: ButtonX},    // Square
		{Index: 3, Target: ButtonY},    // Triangle
		{Index: 4, Target: ButtonBack}, // Share / Create
		{Index: 5, Target: ButtonHome}, // PS button
		{Index: 6, Target: ButtonStart},
		{Index: 7, Target: ButtonLeftStick},
		{Index: 8, Target: ButtonRightStick},
		{Index: 9, Target: ButtonLeftBumper},   // L1
		{Index: 10, Target: ButtonRightBumper}, // R1
	},
	HasHat: true,
}

// The Switch Pro controller reports digital ZL/ZR as buttons 11/12.
var switchProMapping = &DeviceMapping{
	Name: "switch_pro",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLeftBumper},
		{Index: 5, Target: ButtonRightBumper},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonHome},
		{Index: 11, Target: ButtonLeftTrigger},
		{Index: 12, Target: ButtonRightTrigger},
	},
	HasHat: true,
}

var genericMapping = &DeviceMapping{
	Name: "generic",
	Axes: []AxisMapping{
		{Index: 0, Target: AxisLeftX},
		{Index: 1, Target: AxisLeftY},
		{Index: 2, Target: AxisRightX},
		{Index: 3, Target: AxisRightY},
		{Index: 4, Target: ButtonLeftTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
		{Index: 5, Target: ButtonRightTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	},
	Buttons: []ButtonMapping{
		{Index: 0, Target: ButtonA},
		{Index: 1, Target: ButtonB},
		{Index: 2, Target: ButtonX},
		{Index: 3, Target: ButtonY},
		{Index: 4, Target: ButtonLeftBumper},
		{Index: 5, Target: ButtonRightBumper},
		{Index: 6, Target: ButtonBack},
		{Index: 7, Target: ButtonStart},
		{Index: 8, Target: ButtonLeftStick},
		{Index: 9, Target: ButtonRightStick},
		{Index: 10, Target: ButtonHome},
	},
	HasHat: true,
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

var knownDevices = map[deviceKey]*DeviceMapping{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxMapping, // Xbox 360
	{0x045E, 0x02FF}: xboxMapping, // Xbox One
	{0x045E, 0x0B12}: xboxMapping, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxMapping, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationMapping, // DualSense
	{0x054C, 0x09CC}: playstationMapping, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationMapping, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProMapping,
}

// GetMapping returns the appropriate mapping for a device identified by vendor/product ID.
// Falls back to generic mapping if no specific mapping is found.
func GetMapping(vendorID, productID uint16) *DeviceMapping {
	key := deviceKey{VendorID: vendorID, ProductID: productID}
	if m, ok := knownDevices[key]; ok {
		return m
	}
	return genericMapping
}
