// Package runner drives gamepad controls one tick at a time.
//
// Every tick pumps the gamepad source, applies mapping params pushed from
// other goroutines, updates the controls and publishes the resulting state.
// All of it happens on the goroutine calling Step, which is the only place
// the source and the controls are touched.
package runner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/gamepad"
)

// Source is a gamepad source whose notifications are delivered by Pump.
type Source interface {
	gamepad.Source
	Pump()
}

type Runner struct {
	log      *zap.Logger
	source   Source
	controls *controls.Controls
	params   <-chan controls.Params
	changes  chan<- gamepad.State
	ticks    uint64
}

type Option func(*Runner)

// WithParams applies mapping params received on ch at the start of a tick.
func WithParams(ch <-chan controls.Params) Option {
	return func(r *Runner) {
		r.params = ch
	}
}

// WithChanges publishes the state snapshot after every tick. Snapshots are
// dropped while the receiver is busy.
func WithChanges(ch chan<- gamepad.State) Option {
	return func(r *Runner) {
		r.changes = ch
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

func New(source Source, c *controls.Controls, opts ...Option) *Runner {
	r := &Runner{
		log:      zap.L(),
		source:   source,
		controls: c,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(zap.String("component", "runner"))
	return r
}

// Step runs one tick of dt seconds and reports whether the camera moved.
func (r *Runner) Step(dt float64) bool {
	r.ticks++
	r.source.Pump()

	for drained := false; !drained; {
		select {
		case p := <-r.params:
			r.controls.SetParams(p)
			r.log.Info("mapping params applied")
		default:
			drained = true
		}
	}

	moved := r.controls.Update(dt)

	if r.changes != nil {
		select {
		case r.changes <- r.controls.State():
		default:
		}
	}
	return moved
}

// Ticks returns the number of ticks run so far.
func (r *Runner) Ticks() uint64 {
	return r.ticks
}

// Run steps every interval until ctx is done. dt is the measured time since
// the previous tick.
func (r *Runner) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.log.Info("tick loop started", zap.Duration("interval", interval))

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("tick loop stopped", zap.Uint64("ticks", r.ticks))
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.Step(dt)
		}
	}
}
