package commands

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearby/internal/app"
	"nearby/internal/directory"
	"nearby/internal/store"
	"nearby/internal/testutil/testlog"
)

func startDirectory(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(directory.NewServer(store.NewMemory(), testlog.New(t)))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "nearby.toml")
	body := "directory_url = \"" + srv.URL + "\"\n[log]\nlevel = \"error\"\n[simulator]\ninterval = \"5ms\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return srv, path
}

func run(ctx context.Context, t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRoot()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	_, cfg := startDirectory(t)
	out, err := run(context.Background(), t, "", "--config", cfg, "token")
	require.NoError(t, err)
	assert.Contains(t, out, "Fingerprint: ")
	assert.Contains(t, out, "Token: TkJUM")
}

func TestPublishThenFetch(t *testing.T) {
	_, cfg := startDirectory(t)

	out, err := run(context.Background(), t, "", "--config", cfg, "publish")
	require.NoError(t, err)
	assert.Contains(t, out, "Published token id 1")

	out, err = run(context.Background(), t, "", "--config", cfg, "fetch", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Fingerprint: ")

	_, err = run(context.Background(), t, "", "--config", cfg, "fetch", "99")
	assert.ErrorIs(t, err, directory.ErrRemote)

	_, err = run(context.Background(), t, "", "--config", cfg, "fetch", "abc")
	assert.Error(t, err)
}

func TestRangeWithPeer(t *testing.T) {
	srv, cfg := startDirectory(t)

	peerCfg := app.DefaultConfig()
	peerCfg.DirectoryURL = srv.URL
	peerCfg.Simulator.Interval = 5 * time.Millisecond
	peer, err := app.NewWire(peerCfg, io.Discard)
	require.NoError(t, err)
	require.NoError(t, peer.Coordinator.Prepare())
	defer peer.Coordinator.Invalidate()
	peerID, err := peer.Coordinator.PublishLocalToken(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	out, err := run(ctx, t, peerID.String()+"\n", "--config", cfg, "range")
	require.NoError(t, err)

	assert.Contains(t, out, "Local token id: 2")
	assert.Contains(t, out, "Peer token id: ")
	assert.Contains(t, out, "Peer token resolved")
	assert.Contains(t, out, "session started")
	assert.Contains(t, out, " m\n")
}

func TestRangeRejectsBadPeer(t *testing.T) {
	_, cfg := startDirectory(t)
	_, err := run(context.Background(), t, "", "--config", cfg, "range", "--peer", "zero")
	assert.ErrorContains(t, err, "invalid token id")
}

func TestFlagsOverrideConfig(t *testing.T) {
	_, cfg := startDirectory(t)
	_, err := run(context.Background(), t, "", "--config", cfg, "--directory", "http://127.0.0.1:1", "--timeout", "200ms", "fetch", "1")
	assert.ErrorIs(t, err, directory.ErrNetwork)
}
