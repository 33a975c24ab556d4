package controls

import "github.com/golang/geo/r3"

// CameraControls is the camera-control engine that integrates motion. It owns
// smoothing, damping and the camera transform.
//
// Motion methods may animate; the returned channel is closed when the motion
// has completed. Update advances the engine by delta seconds and reports
// whether the camera changed and the scene needs redrawing.
type CameraControls interface {
	Rotate(azimuth, polar float64, enableTransition bool) <-chan struct{}
	Forward(distance float64, enableTransition bool) <-chan struct{}
	Dolly(distance float64, enableTransition bool) <-chan struct{}
	Elevate(distance float64, enableTransition bool) <-chan struct{}
	MoveTo(x, y, z float64, enableTransition bool) <-chan struct{}
	Update(delta float64) bool

	// CameraMatrix returns the camera's local to world transform, column
	// major.
	CameraMatrix() [16]float64

	// TargetEnd returns the point the camera is moving to look at.
	TargetEnd() r3.Vector
}

// Column returns column i (0..2) of a column major 4x4 matrix as a vector.
func Column(m [16]float64, i int) r3.Vector {
	return r3.Vector{X: m[i*4], Y: m[i*4+1], Z: m[i*4+2]}
}
