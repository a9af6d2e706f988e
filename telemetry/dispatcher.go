package telemetry

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"go.viam.com/groundstation/logging"
)

// DefaultQueueSize is the inbound buffer used when none is given.
const DefaultQueueSize = 64

// ErrClosed is returned when publishing to a closed dispatcher.
var ErrClosed = errors.New("dispatcher closed")

// Handler processes one event.
type Handler func(ctx context.Context, ev Event) error

// Dispatcher routes events to handlers keyed by event kind. Events published from any goroutine
// are queued and handled by Run on a single goroutine in the order they were published.
// Subscriptions must be made before Run is started.
type Dispatcher struct {
	logger   logging.Logger
	handlers map[Kind][]Handler

	queue     chan Event
	done      chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once

	handled atomic.Int64
	dropped atomic.Int64
}

// NewDispatcher returns a dispatcher with room for queueSize pending events.
func NewDispatcher(queueSize int, logger logging.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		logger:   logger,
		handlers: map[Kind][]Handler{},
		queue:    make(chan Event, queueSize),
		done:     make(chan struct{}),
	}
}

// Subscribe adds h to the handlers of kind. Handlers run in subscription order.
func (d *Dispatcher) Subscribe(kind Kind, h Handler) {
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Dispatch runs every handler for ev on the calling goroutine. A failing handler does not stop
// the others; failures are logged and returned combined.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	if ev == nil {
		return errors.New("nil event")
	}
	handlers := d.handlers[ev.Kind()]
	if len(handlers) == 0 {
		d.logger.CDebugw(ctx, "no handler for event", "kind", ev.Kind())
		return nil
	}

	var errs error
	for _, h := range handlers {
		errs = multierr.Append(errs, h(ctx, ev))
	}
	if errs != nil {
		d.dropped.Inc()
		d.logger.Warnw("dropped event", "kind", ev.Kind(), "error", errs)
		return errs
	}
	d.handled.Inc()
	return nil
}

// Publish queues ev for Run. It blocks while the queue is full.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) error {
	if ev == nil {
		return errors.New("nil event")
	}
	if d.closed.Load() {
		return ErrClosed
	}
	select {
	case d.queue <- ev:
		return nil
	case <-d.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run handles queued events until ctx is done or the dispatcher is closed. Events already queued
// when Close is called are still handled. Handler failures never stop the loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-d.queue:
			//nolint:errcheck
			d.Dispatch(ctx, ev)
		case <-d.done:
			for {
				select {
				case ev := <-d.queue:
					//nolint:errcheck
					d.Dispatch(ctx, ev)
				default:
					return nil
				}
			}
		}
	}
}

// Stats returns how many events were handled cleanly and how many had a failing handler.
func (d *Dispatcher) Stats() (handled, dropped int64) {
	return d.handled.Load(), d.dropped.Load()
}

// Close stops accepting events. It is safe to call more than once.
func (d *Dispatcher) Close() error {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
	})
	return nil
}
