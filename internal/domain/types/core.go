package types

import "strconv"

// TokenID is the integer identifier the directory assigns to a published token.
type TokenID int

// String returns the decimal form of the identifier.
func (id TokenID) String() string { return strconv.Itoa(int(id)) }

// Fingerprint is a short identifier for tokens presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// SessionID correlates log lines and metrics belonging to one prepared session.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }
