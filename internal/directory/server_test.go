package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"nearby/internal/directory"
	"nearby/internal/domain"
	"nearby/internal/store"
	"nearby/internal/testutil/testlog"
)

func newServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	srv := httptest.NewServer(directory.NewServer(mem, testlog.New(t)))
	t.Cleanup(srv.Close)
	return srv, mem
}

func TestServer_PublishThenFetch(t *testing.T) {
	srv, mem := newServer(t)
	c := directory.NewHTTP(srv.URL, srv.Client(), testlog.New(t))

	token := domain.DiscoveryToken("alice")
	id, err := c.Publish(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())

	got, err := c.Fetch(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, token, got)
}

func TestServer_UnknownIDIsRemoteError(t *testing.T) {
	srv, _ := newServer(t)
	c := directory.NewHTTP(srv.URL, srv.Client(), testlog.New(t))

	_, err := c.Fetch(context.Background(), 404)
	assert.ErrorIs(t, err, directory.ErrRemote)
}

func TestServer_RejectsBadBodies(t *testing.T) {
	srv, mem := newServer(t)

	for _, body := range []string{`not json`, `{"token":"!!!"}`, `{"token":""}`} {
		resp, err := srv.Client().Post(srv.URL, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Zero(t, mem.Len())

	resp, err := srv.Client().Get(srv.URL + "/abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_TwoPeersExchangeTokens(t *testing.T) {
	srv, _ := newServer(t)
	alice := directory.NewHTTP(srv.URL, srv.Client(), testlog.New(t))
	bob := directory.NewHTTP(srv.URL+"/", srv.Client(), testlog.New(t))

	var aliceID, bobID domain.TokenID
	var g errgroup.Group
	g.Go(func() (err error) {
		aliceID, err = alice.Publish(context.Background(), domain.DiscoveryToken("alice"))
		return err
	})
	g.Go(func() (err error) {
		bobID, err = bob.Publish(context.Background(), domain.DiscoveryToken("bob"))
		return err
	})
	require.NoError(t, g.Wait())
	assert.NotEqual(t, aliceID, bobID)

	fromBob, err := alice.Fetch(context.Background(), bobID)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoveryToken("bob"), fromBob)

	fromAlice, err := bob.Fetch(context.Background(), aliceID)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscoveryToken("alice"), fromAlice)
}
