package gamepad

import "sync"

// Virtual is an in-memory Source. Devices are plugged, sampled and unplugged
// by the owner, which makes it the source for tests and for input injected
// from outside the host platform.
type Virtual struct {
	Notifier

	mu   sync.RWMutex
	pads map[int]Pad
}

func NewVirtual() *Virtual {
	return &Virtual{
		pads: make(map[int]Pad),
	}
}

// Connect plugs device index with an initial sample and notifies.
func (v *Virtual) Connect(index int, pad Pad) {
	v.mu.Lock()
	v.pads[index] = pad.Clone()
	v.mu.Unlock()

	v.Connected(index)
}

// Set replaces the sample of a plugged device. It reports false if index is
// not plugged.
func (v *Virtual) Set(index int, pad Pad) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.pads[index]; !ok {
		return false
	}
	v.pads[index] = pad.Clone()
	return true
}

// Unplug removes a device without notifying, the way a device vanishes
// between the platform's notifications.
func (v *Virtual) Unplug(index int) {
	v.mu.Lock()
	delete(v.pads, index)
	v.mu.Unlock()
}

// Disconnect unplugs device index and notifies.
func (v *Virtual) Disconnect(index int) {
	v.Unplug(index)
	v.Disconnected(index)
}

// Pad implements Source.
func (v *Virtual) Pad(index int) (Pad, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	pad, ok := v.pads[index]
	if !ok {
		return Pad{}, false
	}
	return pad.Clone(), true
}
