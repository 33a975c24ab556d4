package events

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type entry struct {
	id uint64
	fn Listener
}

// Dispatcher holds the listeners of a single channel.
type Dispatcher struct {
	channel   Channel
	registry  *Registry
	listeners map[Kind][]entry
}

// Registry is a fixed set of dispatchers, one per known channel.
type Registry struct {
	mu       sync.Mutex
	nextID   uint64
	channels map[Channel]*Dispatcher
}

func NewRegistry() *Registry {
	r := &Registry{
		channels: make(map[Channel]*Dispatcher, len(Channels)),
	}
	for _, ch := range Channels {
		r.channels[ch] = &Dispatcher{
			channel:   ch,
			registry:  r,
			listeners: make(map[Kind][]entry),
		}
	}
	return r
}

// Channel returns the dispatcher for ch, or nil if ch is not a known channel.
func (r *Registry) Channel(ch Channel) *Dispatcher {
	return r.channels[ch]
}

// AddListener registers fn for events of kind on channel ch.
func (r *Registry) AddListener(ch Channel, kind Kind, fn Listener) (Handle, error) {
	d := r.channels[ch]
	if d == nil {
		return Handle{}, errors.Errorf("unknown channel %q", ch)
	}
	return d.AddListener(kind, fn)
}

// RemoveListener unregisters the listener identified by h. It reports whether
// the listener was registered.
func (r *Registry) RemoveListener(h Handle) bool {
	d := r.channels[h.channel]
	if d == nil {
		return false
	}
	return d.RemoveListener(h)
}

// HasListener reports whether the listener identified by h is registered.
func (r *Registry) HasListener(h Handle) bool {
	d := r.channels[h.channel]
	if d == nil {
		return false
	}
	return d.HasListener(h)
}

// RemoveAll removes every listener of the given channels, or of every
// channel if none is given.
func (r *Registry) RemoveAll(channels ...Channel) {
	if len(channels) == 0 {
		channels = Channels
	}
	for _, ch := range channels {
		if d := r.channels[ch]; d != nil {
			d.RemoveAll()
		}
	}
}

// Dispatch fires kind on channel ch. Firing a channel or kind without
// listeners does nothing.
func (r *Registry) Dispatch(ch Channel, kind Kind) error {
	d := r.channels[ch]
	if d == nil {
		return errors.Errorf("unknown channel %q", ch)
	}
	return d.Dispatch(kind)
}

// AddListener registers fn for events of kind on this channel.
func (d *Dispatcher) AddListener(kind Kind, fn Listener) (Handle, error) {
	if !kind.valid() {
		return Handle{}, errors.Errorf("unknown event kind %q", kind)
	}
	if fn == nil {
		return Handle{}, errors.New("nil listener")
	}

	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	d.listeners[kind] = append(d.listeners[kind], entry{id: r.nextID, fn: fn})

	return Handle{registry: r, id: r.nextID, channel: d.channel, kind: kind}, nil
}

// RemoveListener unregisters the listener identified by h.
func (d *Dispatcher) RemoveListener(h Handle) bool {
	if h.registry != d.registry || h.channel != d.channel {
		return false
	}

	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	list := d.listeners[h.kind]
	for i := range list {
		if list[i].id == h.id {
			d.listeners[h.kind] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

// HasListener reports whether the listener identified by h is registered.
func (d *Dispatcher) HasListener(h Handle) bool {
	if h.registry != d.registry || h.channel != d.channel {
		return false
	}

	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range d.listeners[h.kind] {
		if e.id == h.id {
			return true
		}
	}
	return false
}

// RemoveAll removes the listeners of the given kinds, or of every kind if
// none is given.
func (d *Dispatcher) RemoveAll(kinds ...Kind) {
	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(kinds) == 0 {
		d.listeners = make(map[Kind][]entry)
		return
	}
	for _, kind := range kinds {
		delete(d.listeners, kind)
	}
}

// Len returns the number of listeners registered for kind.
func (d *Dispatcher) Len(kind Kind) int {
	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(d.listeners[kind])
}

// Dispatch fires kind on this channel. Listeners run in registration order
// against the list as it was when Dispatch was called; listeners added or
// removed meanwhile take effect on the next dispatch. Panicking listeners are
// recovered and returned as a combined error once every listener has run.
func (d *Dispatcher) Dispatch(kind Kind) error {
	r := d.registry
	r.mu.Lock()
	list := d.listeners[kind]
	snapshot := make([]entry, len(list))
	copy(snapshot, list)
	r.mu.Unlock()

	ev := Event{Channel: d.channel, Kind: kind}

	var errs error
	for _, e := range snapshot {
		if err := call(e.fn, ev); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func call(fn Listener, ev Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok {
				err = errors.Wrapf(perr, "%s listener on %s", ev.Kind, ev.Channel)
				return
			}
			err = errors.Errorf("%s listener on %s: %s", ev.Kind, ev.Channel, fmt.Sprint(p))
		}
	}()

	fn(ev)
	return nil
}
