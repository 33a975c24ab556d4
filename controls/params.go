package controls

import "github.com/pkg/errors"

// TriggerFloor is the travel a trigger must exceed before it dollies the
// camera. It is fixed and independent of the configured trigger thresholds.
const TriggerFloor = 0.1

// Params tunes how gamepad input becomes camera motion.
//
// Stick thresholds gate motion: a stick moves the camera on every tick where
// either of its axes exceeds its threshold. Trigger thresholds gate the
// trigger event channels. Deltas are signed multipliers applied to the raw
// input value.
type Params struct {
	RightStickXThreshold  float64 `mapstructure:"right_stick_x_threshold" json:"rightStickXThreshold"`
	RightStickYThreshold  float64 `mapstructure:"right_stick_y_threshold" json:"rightStickYThreshold"`
	LeftStickXThreshold   float64 `mapstructure:"left_stick_x_threshold" json:"leftStickXThreshold"`
	LeftStickYThreshold   float64 `mapstructure:"left_stick_y_threshold" json:"leftStickYThreshold"`
	RightTriggerThreshold float64 `mapstructure:"right_trigger_threshold" json:"rightTriggerThreshold"`
	LeftTriggerThreshold  float64 `mapstructure:"left_trigger_threshold" json:"leftTriggerThreshold"`

	RotateDelta   float64 `mapstructure:"rotate_delta" json:"rotateDelta"`
	ForwardDelta  float64 `mapstructure:"forward_delta" json:"forwardDelta"`
	SidewaysDelta float64 `mapstructure:"sideways_delta" json:"sidewaysDelta"`
	DollyDelta    float64 `mapstructure:"dolly_delta" json:"dollyDelta"`
	ElevateDelta  float64 `mapstructure:"elevate_delta" json:"elevateDelta"`
}

// DefaultParams returns the default mapping.
func DefaultParams() Params {
	return Params{
		RightStickXThreshold:  0.1,
		RightStickYThreshold:  0.1,
		LeftStickXThreshold:   0.1,
		LeftStickYThreshold:   0.1,
		RightTriggerThreshold: 0.1,
		LeftTriggerThreshold:  0.1,

		RotateDelta:   0.02,
		ForwardDelta:  0.05,
		SidewaysDelta: 0.05,
		DollyDelta:    0.1,
		ElevateDelta:  0.1,
	}
}

// Validate reports thresholds outside [0,1]. Controls never calls it; out of
// range thresholds only degrade the mapping (with a zero threshold any stick
// drift moves the camera).
func (p Params) Validate() error {
	thresholds := []struct {
		name  string
		value float64
	}{
		{"right_stick_x_threshold", p.RightStickXThreshold},
		{"right_stick_y_threshold", p.RightStickYThreshold},
		{"left_stick_x_threshold", p.LeftStickXThreshold},
		{"left_stick_y_threshold", p.LeftStickYThreshold},
		{"right_trigger_threshold", p.RightTriggerThreshold},
		{"left_trigger_threshold", p.LeftTriggerThreshold},
	}

	for _, th := range thresholds {
		if th.value < 0 || th.value > 1 {
			return errors.Errorf("%s out of range [0,1]: %v", th.name, th.value)
		}
	}
	return nil
}
