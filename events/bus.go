package events

import (
	"context"
	"sync"

	"github.com/dustin/go-broadcast"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type (
	// Event is a named payload published on the bus.
	Event struct {
		Name    EventName
		Payload []interface{}
	}

	// Listener handles the payload of one event.
	Listener func(payload ...interface{}) error

	// Bus fans events out to every subscriber.
	Bus struct {
		b      broadcast.Broadcaster
		logger log.Logger
		buffer int
	}

	// BusOption is a function that configures the Bus.
	BusOption func(*Bus)
)

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	bus := &Bus{logger: log.NewNopLogger(), buffer: 100}
	for _, opt := range opts {
		opt(bus)
	}
	bus.b = broadcast.NewBroadcaster(bus.buffer)
	return bus
}

// WithLogger sets the bus logger.
func WithLogger(logger log.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithBuffer sets the size of the publish and subscriber buffers.
func WithBuffer(size int) BusOption {
	return func(b *Bus) {
		if size > 0 {
			b.buffer = size
		}
	}
}

// Fire publishes an event to every subscriber.
func (b *Bus) Fire(name EventName, payload ...interface{}) {
	b.b.Submit(Event{Name: name, Payload: payload})
}

// Subscribe returns a channel receiving every event and a function
// that cancels the subscription.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	raw := make(chan interface{}, b.buffer)
	b.b.Register(raw)

	out := make(chan Event, b.buffer)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-done:
				return
			case v := <-raw:
				if e, ok := v.(Event); ok {
					select {
					case out <- e:
					case <-done:
						return
					}
				}
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			b.b.Unregister(raw)
			close(done)
		})
	}
}

// On runs listener for every event with the given name until ctx is done.
// Listener errors are logged.
func (b *Bus) On(ctx context.Context, name EventName, listener Listener) {
	events, cancel := b.Subscribe()
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-events:
				if !ok {
					return
				}
				if e.Name != name {
					continue
				}
				if err := listener(e.Payload...); err != nil {
					level.Error(b.logger).Log("msg", "event listener failed", "event", e.Name, "err", err)
				}
			}
		}
	}()
}

// Close stops the bus.
func (b *Bus) Close() error {
	return b.b.Close()
}
