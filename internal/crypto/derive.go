package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveUnit expands secret under info into a value in [0, 1).
// Both ends of a DH exchange get the same value for the same info.
func DeriveUnit(secret []byte, info string) (float64, error) {
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	// 53 bits fill a float64 mantissa exactly.
	v := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(v) / float64(uint64(1)<<53), nil
}
