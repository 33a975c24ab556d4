// Package events provides one publish/subscribe channel per physical gamepad
// control.
//
// Every channel fires three kinds of event: Before on the tick a control
// becomes active, On on every tick it stays active (including the first), and
// After on the tick it becomes inactive.
//
// Listeners are identified by the Handle returned when they are added, since
// Go funcs cannot be compared. A listener that panics does not stop the
// remaining listeners: the panic is recovered and reported by Dispatch.
package events

// Kind is the kind of event fired on a channel.
type Kind string

const (
	Before Kind = "before"
	On     Kind = "on"
	After  Kind = "after"
)

// Kinds lists every event kind in firing order.
var Kinds = []Kind{Before, On, After}

func (k Kind) valid() bool {
	switch k {
	case Before, On, After:
		return true
	}
	return false
}

// Channel names a physical control.
type Channel string

const (
	A            Channel = "a"
	B            Channel = "b"
	X            Channel = "x"
	Y            Channel = "y"
	Up           Channel = "up"
	Down         Channel = "down"
	Left         Channel = "left"
	Right        Channel = "right"
	LeftTrigger  Channel = "leftTrigger"
	RightTrigger Channel = "rightTrigger"
	LeftBumper   Channel = "leftBumper"
	RightBumper  Channel = "rightBumper"
	LeftStick    Channel = "leftStick"
	RightStick   Channel = "rightStick"
	Start        Channel = "start"
	Back         Channel = "back"
)

// Channels lists the known channels in a fixed order.
var Channels = []Channel{
	A, B, X, Y,
	Up, Down, Left, Right,
	LeftTrigger, RightTrigger,
	LeftBumper, RightBumper,
	LeftStick, RightStick,
	Start, Back,
}

// Event is the notification passed to listeners.
type Event struct {
	Channel Channel `json:"channel"`
	Kind    Kind    `json:"kind"`
}

// Listener handles an event.
type Listener func(Event)

// Handle identifies a registered listener.
type Handle struct {
	registry *Registry
	id       uint64
	channel  Channel
	kind     Kind
}

// Channel returns the channel the listener was added to.
func (h Handle) Channel() Channel { return h.channel }

// Kind returns the event kind the listener was added for.
func (h Handle) Kind() Kind { return h.kind }
