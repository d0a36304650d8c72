package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"runtime"

	"golang.org/x/crypto/curve25519"

	"nearby/internal/domain"
)

// SessionKeys is the key material behind one discovery token.
type SessionKeys struct {
	Private domain.X25519Private
	Public  domain.X25519Public
	Signer  domain.Ed25519Public
	Sig     []byte // Ed25519 signature by Signer over Public
}

// NewSessionKeys generates an X25519 pair and signs its public half with a
// one-time Ed25519 key. The signing key is wiped before returning.
func NewSessionKeys() (SessionKeys, error) {
	var k SessionKeys
	if _, err := rand.Read(k.Private[:]); err != nil {
		return SessionKeys{}, fmt.Errorf("x25519 seed: %w", err)
	}
	clamp(&k.Private)
	pub, err := curve25519.X25519(k.Private.Slice(), curve25519.Basepoint)
	if err != nil {
		k.Wipe()
		return SessionKeys{}, fmt.Errorf("x25519 public: %w", err)
	}
	copy(k.Public[:], pub)

	signerPub, signerPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		k.Wipe()
		return SessionKeys{}, fmt.Errorf("ed25519 key: %w", err)
	}
	k.Sig = ed25519.Sign(signerPriv, k.Public[:])
	wipe(signerPriv)
	copy(k.Signer[:], signerPub)
	return k, nil
}

// VerifySessionKey reports whether sig is signer's signature over pub.
func VerifySessionKey(pub domain.X25519Public, signer domain.Ed25519Public, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(signer[:]), pub[:], sig)
}

// SharedUnit agrees on a secret with peer and expands it under info into
// [0, 1). Both sides of the exchange get the same value.
func (k *SessionKeys) SharedUnit(peer domain.X25519Public, info string) (float64, error) {
	secret, err := curve25519.X25519(k.Private.Slice(), peer.Slice())
	if err != nil {
		return 0, fmt.Errorf("x25519: %w", err)
	}
	defer wipe(secret)
	return DeriveUnit(secret, info)
}

// Wipe zeroes the private key. The keys are unusable afterwards.
func (k *SessionKeys) Wipe() {
	wipe(k.Private[:])
}

// clamp applies the RFC 7748 scalar clamping.
func clamp(k *domain.X25519Private) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

//go:noinline
func wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
