package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nearby/internal/domain"
	"nearby/internal/events"
	"nearby/internal/metrics"
)

var (
	// ErrInvalidState is returned when an operation is not valid in the current state.
	ErrInvalidState = errors.New("session: operation not valid in current state")
	// ErrSuperseded is returned when a completion arrives after Invalidate or a
	// new Prepare. The result is discarded.
	ErrSuperseded = errors.New("session: superseded by invalidate or prepare")
)

// Coordinator owns the capability handle and the token state of one session.
type Coordinator struct {
	capability domain.Capability
	directory  domain.DirectoryClient
	log        zerolog.Logger

	mu          sync.Mutex
	generation  uint64
	prepared    bool
	unsupported bool
	state       domain.SessionState
	id          domain.SessionID
	session     domain.CapabilitySession
	relay       *events.Relay
	localToken  domain.DiscoveryToken
	localID     domain.TokenID
	peerToken   domain.DiscoveryToken
}

// New returns an idle coordinator. Call Prepare before anything else.
func New(capability domain.Capability, directory domain.DirectoryClient, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		capability: capability,
		directory:  directory,
		log:        log,
		state:      domain.StateIdle,
	}
}

// Prepare acquires a fresh capability session and resets state to Idle.
// A session prepared earlier is invalidated first. On a device without the
// capability Prepare succeeds and every later operation is a no-op.
func (c *Coordinator) Prepare() error {
	c.mu.Lock()
	old := c.teardownLocked()
	c.prepared = true
	c.id = domain.SessionID(uuid.NewString())
	c.setStateLocked(domain.StateIdle)
	log := c.sessionLog()

	if !c.capability.Supported() {
		c.unsupported = true
		c.mu.Unlock()
		invalidate(old)
		log.Warn().Msg("ranging capability unsupported on this device")
		return nil
	}
	c.unsupported = false
	gen := c.generation
	relay := events.NewRelay(log.With().Str("component", "relay").Logger())
	c.relay = relay
	c.mu.Unlock()
	invalidate(old)

	sess, err := c.capability.NewSession(func(ev domain.Event) { c.handleEvent(gen, ev) })

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		if sess != nil {
			sess.Invalidate()
		}
		return ErrSuperseded
	}
	if err != nil {
		relay.Close()
		return fmt.Errorf("create capability session: %w", err)
	}
	c.session = sess
	log.Info().Msg("session prepared")
	return nil
}

// Supported reports whether the last Prepare found a usable capability.
func (c *Coordinator) Supported() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prepared && !c.unsupported
}

// PublishLocalToken publishes the session's token and records the id the
// directory assigned. On failure the state is left unchanged.
func (c *Coordinator) PublishLocalToken(ctx context.Context) (domain.TokenID, error) {
	c.mu.Lock()
	if c.unsupported {
		c.mu.Unlock()
		return 0, nil
	}
	if c.session == nil {
		c.mu.Unlock()
		return 0, fmt.Errorf("%w: publish needs a prepared session", ErrInvalidState)
	}
	if c.state != domain.StateIdle && c.state != domain.StateLocalTokenPublished {
		state := c.state
		c.mu.Unlock()
		return 0, fmt.Errorf("%w: publish in state %s", ErrInvalidState, state)
	}
	sess, gen := c.session, c.generation
	c.mu.Unlock()

	token, err := sess.LocalToken()
	if err != nil {
		return 0, fmt.Errorf("local token: %w", err)
	}
	id, err := c.directory.Publish(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.sessionLog().Debug().Msg("publish completed after teardown; discarded")
		return 0, ErrSuperseded
	}
	if err != nil {
		return 0, fmt.Errorf("publish local token: %w", err)
	}
	c.localToken = token.Clone()
	c.localID = id
	if c.state == domain.StateIdle {
		c.setStateLocked(domain.StateLocalTokenPublished)
	}
	c.sessionLog().Info().Int("id", int(id)).Msg("local token published")
	return id, nil
}

// ResolvePeer fetches the peer's token published under id. While the request
// is in flight the state is AwaitingPeerToken, and it stays there on failure
// so the caller can retry.
func (c *Coordinator) ResolvePeer(ctx context.Context, id domain.TokenID) error {
	c.mu.Lock()
	if c.unsupported {
		c.mu.Unlock()
		return nil
	}
	if c.session == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: resolve needs a prepared session", ErrInvalidState)
	}
	switch c.state {
	case domain.StateLocalTokenPublished, domain.StateAwaitingPeerToken, domain.StatePeerTokenResolved:
	default:
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: resolve in state %s", ErrInvalidState, state)
	}
	c.setStateLocked(domain.StateAwaitingPeerToken)
	gen := c.generation
	c.mu.Unlock()

	token, err := c.directory.Fetch(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	log := c.sessionLog()
	if gen != c.generation {
		log.Debug().Int("peer_id", int(id)).Msg("peer token arrived after teardown; discarded")
		return ErrSuperseded
	}
	if err != nil {
		return fmt.Errorf("resolve peer %d: %w", id, err)
	}
	if c.state != domain.StateAwaitingPeerToken && c.state != domain.StatePeerTokenResolved {
		log.Debug().Int("peer_id", int(id)).Stringer("state", c.state).Msg("peer token arrived after start; discarded")
		return ErrSuperseded
	}
	c.peerToken = token.Clone()
	c.setStateLocked(domain.StatePeerTokenResolved)
	log.Info().Int("peer_id", int(id)).Msg("peer token resolved")
	return nil
}

// Start runs the capability against the resolved peer token. Without a
// session or a peer token it returns nil and does nothing, as it does when
// the session is already running.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	if c.unsupported || c.session == nil || c.peerToken == nil || c.state != domain.StatePeerTokenResolved {
		c.mu.Unlock()
		return nil
	}
	sess, peer, gen := c.session, c.peerToken.Clone(), c.generation
	c.setStateLocked(domain.StateRunning)
	c.mu.Unlock()

	err := sess.Run(peer)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return ErrSuperseded
	}
	if err != nil {
		if c.state == domain.StateRunning {
			c.setStateLocked(domain.StatePeerTokenResolved)
		}
		return fmt.Errorf("run capability session: %w", err)
	}
	c.sessionLog().Info().Msg("ranging started")
	return nil
}

// Invalidate ends the session. It is safe in any state and idempotent.
// Pending directory completions for the old session are discarded.
func (c *Coordinator) Invalidate() {
	c.mu.Lock()
	old := c.teardownLocked()
	c.setStateLocked(domain.StateInvalidated)
	c.mu.Unlock()

	invalidate(old)
}

// teardownLocked drops everything tied to the current generation and
// returns the capability session for the caller to invalidate unlocked.
func (c *Coordinator) teardownLocked() domain.CapabilitySession {
	c.generation++
	if c.relay != nil {
		c.relay.Publish(domain.Event{Kind: domain.EventInvalidated})
		c.relay.Close()
	}
	sess := c.session
	c.session = nil
	c.localToken = nil
	c.localID = 0
	c.peerToken = nil
	return sess
}

func invalidate(sess domain.CapabilitySession) {
	if sess != nil {
		sess.Invalidate()
	}
}

// handleEvent applies a capability callback stamped with generation gen.
func (c *Coordinator) handleEvent(gen uint64, ev domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.log.Debug().Stringer("kind", ev.Kind).Msg("callback from a torn down session; dropped")
		return
	}

	switch ev.Kind {
	case domain.EventSuspended:
		if c.state == domain.StateRunning {
			c.setStateLocked(domain.StateSuspended)
		}
	case domain.EventResumed:
		if c.state == domain.StateSuspended {
			c.setStateLocked(domain.StateRunning)
		}
	case domain.EventInvalidated:
		// The capability already ended the session; don't invalidate it again.
		c.generation++
		c.session = nil
		c.peerToken = nil
		c.setStateLocked(domain.StateInvalidated)
	}
	if c.relay != nil {
		c.relay.Publish(ev)
	}
}

func (c *Coordinator) setStateLocked(s domain.SessionState) {
	if s == c.state {
		return
	}
	metrics.RecordTransition(c.state.String(), s.String())
	c.sessionLog().Debug().Stringer("from", c.state).Stringer("to", s).Msg("state transition")
	c.state = s
}

func (c *Coordinator) sessionLog() *zerolog.Logger {
	l := c.log.With().Str("session", c.id.String()).Logger()
	return &l
}

// State returns the current state.
func (c *Coordinator) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LocalToken returns the published local token, or nil.
func (c *Coordinator) LocalToken() domain.DiscoveryToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localToken.Clone()
}

// LocalTokenID returns the id of the published local token, or 0.
func (c *Coordinator) LocalTokenID() domain.TokenID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localID
}

// PeerToken returns the resolved peer token, or nil.
func (c *Coordinator) PeerToken() domain.DiscoveryToken {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.peerToken.Clone()
}

// Distances returns the sample stream of the current session. The channel
// closes when that session ends; call again after the next Prepare.
func (c *Coordinator) Distances() <-chan domain.DistanceSample {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.relay == nil {
		ch := make(chan domain.DistanceSample)
		close(ch)
		return ch
	}
	return c.relay.Distances()
}

// Lifecycle subscribes to the current session's non-distance events.
func (c *Coordinator) Lifecycle() <-chan domain.LifecycleEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.relay == nil {
		ch := make(chan domain.LifecycleEvent)
		close(ch)
		return ch
	}
	return c.relay.Lifecycle()
}

// Compile-time assertion that Coordinator implements domain.RangingService.
var _ domain.RangingService = (*Coordinator)(nil)
