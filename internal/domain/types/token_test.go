package types

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBase64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		tok := make(DiscoveryToken, rng.Intn(300))
		rng.Read(tok)

		got, err := DecodeBase64Token(tok.Base64())
		require.NoError(t, err)
		assert.True(t, tok.Equal(got), "length %d", len(tok))
	}
}

func TestTokenCloneDoesNotAlias(t *testing.T) {
	tok := DiscoveryToken("abc")
	c := tok.Clone()
	c[0] = 'z'
	assert.Equal(t, DiscoveryToken("abc"), tok)
	assert.Nil(t, DiscoveryToken(nil).Clone())
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "peer_token_resolved", StatePeerTokenResolved.String())
	assert.Equal(t, "unknown", SessionState(99).String())
	assert.Equal(t, "peer_ended", RemovalPeerEnded.String())
	assert.Equal(t, "invalidated", EventInvalidated.String())
}

func TestParseKeysChecksLength(t *testing.T) {
	b := make([]byte, 32)
	b[0] = 7
	x, err := ParseX25519Public(b)
	require.NoError(t, err)
	assert.Equal(t, byte(7), x[0])

	_, err = ParseX25519Public(b[:31])
	assert.Error(t, err)
	_, err = ParseEd25519Public(append(b, 0))
	assert.Error(t, err)
}
