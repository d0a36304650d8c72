package types

import "fmt"

// Session keys carried in a discovery token. Private halves never leave the
// capability that generated them.
type (
	X25519Public  [32]byte
	X25519Private [32]byte
	Ed25519Public [32]byte
)

func (k X25519Public) Slice() []byte  { return k[:] }
func (k X25519Private) Slice() []byte { return k[:] }

// ParseX25519Public copies b into a key. b must be exactly 32 bytes.
func ParseX25519Public(b []byte) (X25519Public, error) {
	var out X25519Public
	if len(b) != len(out) {
		return out, fmt.Errorf("x25519 public key: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}

// ParseEd25519Public copies b into a key. b must be exactly 32 bytes.
func ParseEd25519Public(b []byte) (Ed25519Public, error) {
	var out Ed25519Public
	if len(b) != len(out) {
		return out, fmt.Errorf("ed25519 public key: want %d bytes, got %d", len(out), len(b))
	}
	copy(out[:], b)
	return out, nil
}
