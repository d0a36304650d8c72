package types

import (
	"bytes"
	"encoding/base64"
)

// DiscoveryToken is the opaque identity blob a capability hands out so that a
// peer can address this device. Its contents are only meaningful to the
// capability that produced it.
type DiscoveryToken []byte

// Base64 returns the standard base64 encoding used on the wire.
func (t DiscoveryToken) Base64() string { return base64.StdEncoding.EncodeToString(t) }

// Clone returns a copy that does not alias t.
func (t DiscoveryToken) Clone() DiscoveryToken {
	if t == nil {
		return nil
	}
	return append(DiscoveryToken(nil), t...)
}

// Equal reports whether both tokens hold the same bytes.
func (t DiscoveryToken) Equal(o DiscoveryToken) bool { return bytes.Equal(t, o) }

// Empty reports whether the token carries no bytes.
func (t DiscoveryToken) Empty() bool { return len(t) == 0 }

// DecodeBase64Token reverses DiscoveryToken.Base64.
func DecodeBase64Token(s string) (DiscoveryToken, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return DiscoveryToken(b), nil
}
