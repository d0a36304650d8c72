package sim

import (
	"bytes"
	"errors"
	"fmt"

	"nearby/internal/crypto"
	"nearby/internal/domain"
)

const (
	tokenMagic = "NBT1"
	sigSize    = 64
	tokenSize  = len(tokenMagic) + 32 + 32 + sigSize
)

var (
	// ErrMalformedToken is returned for tokens with the wrong size or prefix.
	ErrMalformedToken = errors.New("sim: malformed discovery token")
	// ErrBadSignature is returned when the token's key signature does not verify.
	ErrBadSignature = errors.New("sim: discovery token signature invalid")
)

func encodeToken(xpub domain.X25519Public, edpub domain.Ed25519Public, sig []byte) domain.DiscoveryToken {
	out := make([]byte, 0, tokenSize)
	out = append(out, tokenMagic...)
	out = append(out, xpub[:]...)
	out = append(out, edpub[:]...)
	out = append(out, sig...)
	return out
}

// parseToken checks a peer token and returns its X25519 key.
func parseToken(t domain.DiscoveryToken) (domain.X25519Public, error) {
	if len(t) != tokenSize {
		return domain.X25519Public{}, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedToken, len(t), tokenSize)
	}
	if !bytes.HasPrefix(t, []byte(tokenMagic)) {
		return domain.X25519Public{}, fmt.Errorf("%w: bad prefix", ErrMalformedToken)
	}
	rest := t[len(tokenMagic):]
	xpub, err := domain.ParseX25519Public(rest[:32])
	if err != nil {
		return xpub, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	edpub, err := domain.ParseEd25519Public(rest[32:64])
	if err != nil {
		return xpub, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if !crypto.VerifySessionKey(xpub, edpub, rest[64:]) {
		return xpub, ErrBadSignature
	}
	return xpub, nil
}
