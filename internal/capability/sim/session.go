package sim

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"nearby/internal/crypto"
	"nearby/internal/domain"
)

var (
	// ErrInvalidated is returned by a session after Invalidate or Fail.
	ErrInvalidated = errors.New("sim: session invalidated")
	// ErrRunning is returned when Run is called twice.
	ErrRunning = errors.New("sim: session already running")
)

const baseInfo = "nearby/sim/base-distance"

// Session is one simulated ranging session.
type Session struct {
	cfg      Config
	log      zerolog.Logger
	listener domain.Listener

	// emitMu serializes listener calls.
	emitMu sync.Mutex

	mu          sync.Mutex
	keys        crypto.SessionKeys
	token       domain.DiscoveryToken
	peer        domain.DiscoveryToken
	running     bool
	suspended   bool
	invalidated bool
	stop        chan struct{}
}

// LocalToken returns the token a peer needs to range with this session.
func (s *Session) LocalToken() (domain.DiscoveryToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated {
		return nil, ErrInvalidated
	}
	return s.token.Clone(), nil
}

// Run starts ranging with peer. Callbacks begin with Started and continue
// with one Updated batch per interval until the session ends.
func (s *Session) Run(peer domain.DiscoveryToken) error {
	xpub, err := parseToken(peer)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated {
		return ErrInvalidated
	}
	if s.running {
		return ErrRunning
	}
	unit, err := s.keys.SharedUnit(xpub, baseInfo)
	if err != nil {
		return fmt.Errorf("derive baseline: %w", err)
	}
	base := s.cfg.BaseDistance * (0.5 + unit)

	s.running = true
	s.peer = peer.Clone()
	s.stop = make(chan struct{})
	s.log.Info().Float64("baseline", base).Msg("simulated ranging started")
	go s.loop(s.stop, s.peer, base)
	return nil
}

func (s *Session) loop(stop <-chan struct{}, peer domain.DiscoveryToken, base float64) {
	s.emit(domain.Event{Kind: domain.EventStarted})

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	for tick := 0; ; tick++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		if s.isSuspended() {
			continue
		}
		obj := domain.NearbyObject{Token: peer.Clone()}
		if tick > 0 {
			d := Distance(base, s.cfg.Amplitude, float64(tick)*s.cfg.Interval.Seconds())
			obj.Distance = &d
		}
		s.emit(domain.Event{Kind: domain.EventUpdated, Objects: []domain.NearbyObject{obj}})
	}
}

// Distance is the simulated measurement at elapsed seconds, never negative.
func Distance(base, amplitude, elapsed float64) float64 {
	return math.Max(0, base+amplitude*math.Sin(elapsed))
}

// Suspend pauses updates and reports Suspended.
func (s *Session) Suspend() {
	s.setSuspended(true, domain.EventSuspended)
}

// Resume restarts updates and reports Resumed.
func (s *Session) Resume() {
	s.setSuspended(false, domain.EventResumed)
}

func (s *Session) setSuspended(v bool, kind domain.EventKind) {
	s.mu.Lock()
	if !s.running || s.invalidated || s.suspended == v {
		s.mu.Unlock()
		return
	}
	s.suspended = v
	s.mu.Unlock()
	s.emit(domain.Event{Kind: kind})
}

func (s *Session) isSuspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspended
}

// Remove reports the peer as gone for reason. Updates keep coming, as the
// peer may be seen again.
func (s *Session) Remove(reason domain.RemovalReason) {
	s.mu.Lock()
	peer := s.peer
	ok := s.running && !s.invalidated
	s.mu.Unlock()
	if !ok {
		return
	}
	s.emit(domain.Event{
		Kind:    domain.EventRemoved,
		Objects: []domain.NearbyObject{{Token: peer.Clone()}},
		Reason:  reason,
	})
}

// Fail ends the session from the capability side and reports Invalidated
// with err.
func (s *Session) Fail(err error) {
	if !s.end() {
		return
	}
	s.log.Warn().Err(err).Msg("simulated session failed")
	s.emitFinal(domain.Event{Kind: domain.EventInvalidated, Err: err})
}

// Invalidate ends the session without a callback. It is idempotent. No
// callback is delivered after it returns, so it must not be called from the
// listener.
func (s *Session) Invalidate() {
	if s.end() {
		s.log.Debug().Msg("simulated session invalidated")
	}
	// Wait out a callback already in flight.
	s.emitMu.Lock()
	s.emitMu.Unlock()
}

// end marks the session invalidated and stops the loop. It reports whether
// this call did it.
func (s *Session) end() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated {
		return false
	}
	s.invalidated = true
	if s.stop != nil {
		close(s.stop)
	}
	s.keys.Wipe()
	return true
}

func (s *Session) emit(ev domain.Event) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	s.mu.Lock()
	dead := s.invalidated
	s.mu.Unlock()
	if dead || s.listener == nil {
		return
	}
	s.listener(ev)
}

func (s *Session) emitFinal(ev domain.Event) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()
	if s.listener != nil {
		s.listener(ev)
	}
}

var _ domain.CapabilitySession = (*Session)(nil)
