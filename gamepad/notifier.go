package gamepad

import "sync"

type notifyFunc struct {
	id uint64
	fn func(index int)
}

// Notifier keeps the connect and disconnect callbacks of a Source. Sources
// embed it and call Connected/Disconnected from their pump.
type Notifier struct {
	mu         sync.Mutex
	nextID     uint64
	connect    []notifyFunc
	disconnect []notifyFunc
}

// OnConnect implements Source.
func (n *Notifier) OnConnect(fn func(index int)) func() {
	return n.add(&n.connect, fn)
}

// OnDisconnect implements Source.
func (n *Notifier) OnDisconnect(fn func(index int)) func() {
	return n.add(&n.disconnect, fn)
}

// Connected notifies every connect callback.
func (n *Notifier) Connected(index int) {
	n.notify(&n.connect, index)
}

// Disconnected notifies every disconnect callback.
func (n *Notifier) Disconnected(index int) {
	n.notify(&n.disconnect, index)
}

func (n *Notifier) add(list *[]notifyFunc, fn func(int)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	*list = append(*list, notifyFunc{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			for i := range *list {
				if (*list)[i].id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

func (n *Notifier) notify(list *[]notifyFunc, index int) {
	n.mu.Lock()
	fns := make([]notifyFunc, len(*list))
	copy(fns, *list)
	n.mu.Unlock()

	for _, f := range fns {
		f.fn(index)
	}
}
