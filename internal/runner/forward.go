package runner

import (
	"go.uber.org/zap"

	"github.com/soar/padcam/events"
)

// Forward subscribes to the Before and After events of every channel,
// logging each one and handing it to out without blocking. The returned func
// removes the listeners.
func Forward(log *zap.Logger, reg *events.Registry, out chan<- events.Event) (func(), error) {
	var handles []events.Handle
	cancel := func() {
		for _, h := range handles {
			reg.RemoveListener(h)
		}
	}

	listener := func(ev events.Event) {
		log.Debug("channel event",
			zap.String("channel", string(ev.Channel)),
			zap.String("kind", string(ev.Kind)),
		)
		select {
		case out <- ev:
		default:
		}
	}

	for _, ch := range events.Channels {
		for _, kind := range []events.Kind{events.Before, events.After} {
			h, err := reg.AddListener(ch, kind, listener)
			if err != nil {
				cancel()
				return nil, err
			}
			handles = append(handles, h)
		}
	}
	return cancel, nil
}
