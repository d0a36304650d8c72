package interfaces

import domaintypes "nearby/internal/domain/types"

// Listener receives capability callbacks. It may be called from any goroutine
// but never concurrently for the same session.
type Listener func(domaintypes.Event)

// Capability is the platform ranging engine.
type Capability interface {
	// Supported reports whether this device can range at all.
	Supported() bool
	// NewSession creates a session whose callbacks go to l.
	NewSession(l Listener) (CapabilitySession, error)
	// ValidateToken reports whether token is one this capability can range with.
	ValidateToken(token domaintypes.DiscoveryToken) error
}

// CapabilitySession is one handle on the ranging engine.
type CapabilitySession interface {
	LocalToken() (domaintypes.DiscoveryToken, error)
	Run(peer domaintypes.DiscoveryToken) error
	Invalidate()
}
