package session

import (
	"context"
	"errors"
	"sync"

	"nearby/internal/domain"
)

type fakeCapability struct {
	mu        sync.Mutex
	supported bool
	newErr    error
	sessions  []*fakeSession
}

func (f *fakeCapability) Supported() bool { return f.supported }

func (f *fakeCapability) NewSession(l domain.Listener) (domain.CapabilitySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.newErr != nil {
		return nil, f.newErr
	}
	s := &fakeSession{listener: l, token: domain.DiscoveryToken{byte(len(f.sessions) + 1), 0xAA}}
	f.sessions = append(f.sessions, s)
	return s, nil
}

func (f *fakeCapability) ValidateToken(t domain.DiscoveryToken) error {
	if t.Empty() {
		return errors.New("empty")
	}
	return nil
}

func (f *fakeCapability) last() *fakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[len(f.sessions)-1]
}

type fakeSession struct {
	listener domain.Listener

	mu          sync.Mutex
	token       domain.DiscoveryToken
	tokenErr    error
	runErr      error
	runs        []domain.DiscoveryToken
	invalidated int
}

func (s *fakeSession) LocalToken() (domain.DiscoveryToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.tokenErr
}

func (s *fakeSession) Run(peer domain.DiscoveryToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, peer)
	return s.runErr
}

func (s *fakeSession) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
}

func (s *fakeSession) emit(ev domain.Event) { s.listener(ev) }

func (s *fakeSession) invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// fakeDirectory answers from funcs so tests can block or fail a call.
type fakeDirectory struct {
	publish func(context.Context, domain.DiscoveryToken) (domain.TokenID, error)
	fetch   func(context.Context, domain.TokenID) (domain.DiscoveryToken, error)
}

func (d *fakeDirectory) Publish(ctx context.Context, t domain.DiscoveryToken) (domain.TokenID, error) {
	return d.publish(ctx, t)
}

func (d *fakeDirectory) Fetch(ctx context.Context, id domain.TokenID) (domain.DiscoveryToken, error) {
	return d.fetch(ctx, id)
}

func okDirectory(peers map[domain.TokenID]domain.DiscoveryToken) *fakeDirectory {
	return &fakeDirectory{
		publish: func(context.Context, domain.DiscoveryToken) (domain.TokenID, error) { return 7, nil },
		fetch: func(_ context.Context, id domain.TokenID) (domain.DiscoveryToken, error) {
			t, ok := peers[id]
			if !ok {
				return nil, errors.New("not found")
			}
			return t, nil
		},
	}
}
