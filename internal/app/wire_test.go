package app

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"nearby/internal/directory"
	"nearby/internal/domain"
	"nearby/internal/store"
	"nearby/internal/testutil/testlog"
)

func testWire(t *testing.T, url string) *Wire {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DirectoryURL = url
	cfg.Log.Level = "debug"
	cfg.Simulator.Interval = 5 * time.Millisecond
	w, err := NewWire(cfg, zerolog.NewTestWriter(t))
	require.NoError(t, err)
	return w
}

func TestTwoPeersRangeThroughDirectory(t *testing.T) {
	srv := httptest.NewServer(directory.NewServer(store.NewMemory(), testlog.New(t)))
	defer srv.Close()

	alice := testWire(t, srv.URL).Coordinator
	bob := testWire(t, srv.URL).Coordinator
	defer alice.Invalidate()
	defer bob.Invalidate()

	ctx := context.Background()
	require.NoError(t, alice.Prepare())
	require.NoError(t, bob.Prepare())

	aliceID, err := alice.PublishLocalToken(ctx)
	require.NoError(t, err)
	bobID, err := bob.PublishLocalToken(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, aliceID, bobID)

	require.NoError(t, alice.ResolvePeer(ctx, bobID))
	require.NoError(t, bob.ResolvePeer(ctx, aliceID))
	assert.Equal(t, bob.LocalToken(), alice.PeerToken())
	assert.Equal(t, alice.LocalToken(), bob.PeerToken())

	aliceSamples, bobSamples := alice.Distances(), bob.Distances()
	require.NoError(t, alice.Start())
	require.NoError(t, bob.Start())
	assert.Equal(t, domain.StateRunning, alice.State())

	var first [2]domain.DistanceSample
	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range []<-chan domain.DistanceSample{aliceSamples, bobSamples} {
		g.Go(func() error {
			select {
			case s, ok := <-ch:
				if !ok {
					return assert.AnError
				}
				first[i] = s
				return nil
			case <-time.After(2 * time.Second):
				return context.DeadlineExceeded
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	require.NoError(t, g.Wait())

	// Both sides sample the same curve around a shared baseline.
	assert.InDelta(t, first[0].Meters, first[1].Meters, 1e-9)
}

func TestFetchRejectsForeignToken(t *testing.T) {
	srv := httptest.NewServer(directory.NewServer(store.NewMemory(), testlog.New(t)))
	defer srv.Close()

	w := testWire(t, srv.URL)

	plain := directory.NewHTTP(srv.URL, srv.Client(), testlog.New(t))
	id, err := plain.Publish(context.Background(), domain.DiscoveryToken("not a sim token"))
	require.NoError(t, err)

	_, err = w.Directory.Fetch(context.Background(), id)
	assert.ErrorIs(t, err, directory.ErrTokenDecode)
}

func TestNewWireRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DirectoryURL = ""
	_, err := NewWire(cfg, zerolog.NewTestWriter(t))
	assert.Error(t, err)
}
