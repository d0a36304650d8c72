package types

// SessionState is the coordinator's view of where a ranging session stands.
type SessionState int

const (
	StateIdle SessionState = iota
	StateLocalTokenPublished
	StateAwaitingPeerToken
	StatePeerTokenResolved
	StateRunning
	StateSuspended
	StateInvalidated
)

var stateNames = [...]string{
	StateIdle:                "idle",
	StateLocalTokenPublished: "local_token_published",
	StateAwaitingPeerToken:   "awaiting_peer_token",
	StatePeerTokenResolved:   "peer_token_resolved",
	StateRunning:             "running",
	StateSuspended:           "suspended",
	StateInvalidated:         "invalidated",
}

// String returns the snake_case name used in logs and metric labels.
func (s SessionState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
