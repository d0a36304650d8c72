package types

import "time"

// EventKind tags the callback a capability delivered.
type EventKind int

const (
	EventStarted EventKind = iota + 1
	EventUpdated
	EventRemoved
	EventSuspended
	EventResumed
	EventInvalidated
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	case EventSuspended:
		return "suspended"
	case EventResumed:
		return "resumed"
	case EventInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// RemovalReason explains why a nearby object left the session.
type RemovalReason int

const (
	RemovalTimeout RemovalReason = iota
	RemovalPeerEnded
)

func (r RemovalReason) String() string {
	switch r {
	case RemovalTimeout:
		return "timeout"
	case RemovalPeerEnded:
		return "peer_ended"
	default:
		return "unknown"
	}
}

// NearbyObject is one peer as reported by the capability. Distance is nil
// until the capability has a measurement.
type NearbyObject struct {
	Token    DiscoveryToken
	Distance *float64
}

// Event is a single capability callback. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Objects []NearbyObject
	Reason  RemovalReason
	Err     error
}

// DistanceSample is one measured distance in meters.
type DistanceSample struct {
	Meters float64
	At     time.Time
}

// LifecycleEvent is every non-distance event, stamped on arrival.
type LifecycleEvent struct {
	Kind    EventKind
	Removed int
	Reason  RemovalReason
	Err     error
	At      time.Time
}
