package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"nearby/internal/domain"
)

// Fingerprint returns a short hex fingerprint of a token.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(token domain.DiscoveryToken) domain.Fingerprint {
	sum := sha256.Sum256(token)
	return domain.Fingerprint(hex.EncodeToString(sum[:10]))
}
