package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"nearby/internal/domain"
	"nearby/internal/metrics"
)

// Relay fans one session's capability events out to distance and lifecycle
// channels.
type Relay struct {
	log    zerolog.Logger
	now    func() time.Time
	linger time.Duration

	mu        sync.Mutex
	closed    bool
	samples   *queue[domain.DistanceSample]
	lifecycle *queue[domain.LifecycleEvent]
}

// DefaultLinger is how long a closed relay waits on a consumer that stopped
// receiving before dropping the undelivered backlog.
const DefaultLinger = 5 * time.Second

// Option configures a Relay.
type Option func(*Relay)

// WithLinger overrides DefaultLinger.
func WithLinger(d time.Duration) Option {
	return func(r *Relay) { r.linger = d }
}

// NewRelay returns an open relay.
func NewRelay(log zerolog.Logger, opts ...Option) *Relay {
	r := &Relay{log: log, now: time.Now, linger: DefaultLinger}
	for _, opt := range opts {
		opt(r)
	}
	r.samples = newQueue[domain.DistanceSample](r.linger)
	return r
}

// Distances returns the sample stream. It is closed once the relay has ended
// and the backlog is delivered, or dropped after the linger period.
func (r *Relay) Distances() <-chan domain.DistanceSample {
	return r.samples.out
}

// Lifecycle subscribes to non-distance events. Events published before the
// first call are only logged. On a closed relay the returned channel is
// already closed.
func (r *Relay) Lifecycle() <-chan domain.LifecycleEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lifecycle == nil {
		r.lifecycle = newQueue[domain.LifecycleEvent](r.linger)
		if r.closed {
			r.lifecycle.close()
		}
	}
	return r.lifecycle.out
}

// Publish routes one capability callback. It is safe to call from any
// goroutine; concurrent batches are emitted whole, never interleaved.
func (r *Relay) Publish(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.log.Debug().Stringer("kind", ev.Kind).Msg("event after relay closed; dropped")
		return
	}

	switch ev.Kind {
	case domain.EventUpdated:
		r.publishUpdate(ev.Objects)
		return
	case domain.EventStarted:
		r.log.Info().Msg("session started running")
	case domain.EventRemoved:
		r.log.Info().Int("objects", len(ev.Objects)).Stringer("reason", ev.Reason).Msg("nearby objects removed")
	case domain.EventSuspended:
		r.log.Info().Msg("session suspended")
	case domain.EventResumed:
		r.log.Info().Msg("session suspension ended")
	case domain.EventInvalidated:
		r.log.Info().AnErr("cause", ev.Err).Msg("session invalidated")
	default:
		r.log.Warn().Int("kind", int(ev.Kind)).Msg("unknown event kind")
		return
	}

	metrics.RecordLifecycle(ev.Kind.String())
	if r.lifecycle != nil {
		r.lifecycle.push(domain.LifecycleEvent{
			Kind:    ev.Kind,
			Removed: len(ev.Objects),
			Reason:  ev.Reason,
			Err:     ev.Err,
			At:      r.now(),
		})
	}
	if ev.Kind == domain.EventInvalidated {
		r.closeLocked()
	}
}

func (r *Relay) publishUpdate(objects []domain.NearbyObject) {
	at := r.now()
	out := make([]domain.DistanceSample, 0, len(objects))
	for _, o := range objects {
		if o.Distance == nil {
			continue
		}
		out = append(out, domain.DistanceSample{Meters: *o.Distance, At: at})
	}
	skipped := len(objects) - len(out)

	r.log.Debug().Int("objects", len(objects)).Int("samples", len(out)).Msg("nearby objects updated")
	metrics.RecordSamples(len(out), skipped)
	if len(out) > 0 {
		r.samples.push(out...)
	}
}

// Close ends the relay. Queued items are still delivered. Safe to call twice.
func (r *Relay) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
}

// Closed reports whether the relay has ended.
func (r *Relay) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Relay) closeLocked() {
	if r.closed {
		return
	}
	r.closed = true
	r.samples.close()
	if r.lifecycle != nil {
		r.lifecycle.close()
	}
}
