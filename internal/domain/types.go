package domain

import (
	interfaces "nearby/internal/domain/interfaces"
	types "nearby/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	TokenID        = types.TokenID
	Fingerprint    = types.Fingerprint
	SessionID      = types.SessionID
	DiscoveryToken = types.DiscoveryToken
	PublishRequest = types.PublishRequest
	DirectoryEntry = types.DirectoryEntry
	SessionState   = types.SessionState
	EventKind      = types.EventKind
	RemovalReason  = types.RemovalReason
	NearbyObject   = types.NearbyObject
	Event          = types.Event
	DistanceSample = types.DistanceSample
	LifecycleEvent = types.LifecycleEvent
	X25519Public   = types.X25519Public
	X25519Private  = types.X25519Private
	Ed25519Public  = types.Ed25519Public
)

const (
	StateIdle                = types.StateIdle
	StateLocalTokenPublished = types.StateLocalTokenPublished
	StateAwaitingPeerToken   = types.StateAwaitingPeerToken
	StatePeerTokenResolved   = types.StatePeerTokenResolved
	StateRunning             = types.StateRunning
	StateSuspended           = types.StateSuspended
	StateInvalidated         = types.StateInvalidated

	EventStarted     = types.EventStarted
	EventUpdated     = types.EventUpdated
	EventRemoved     = types.EventRemoved
	EventSuspended   = types.EventSuspended
	EventResumed     = types.EventResumed
	EventInvalidated = types.EventInvalidated

	RemovalTimeout   = types.RemovalTimeout
	RemovalPeerEnded = types.RemovalPeerEnded
)

var (
	// DecodeBase64Token reverses DiscoveryToken.Base64.
	DecodeBase64Token  = types.DecodeBase64Token
	ParseX25519Public  = types.ParseX25519Public
	ParseEd25519Public = types.ParseEd25519Public
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	DirectoryClient   = interfaces.DirectoryClient
	TokenStore        = interfaces.TokenStore
	Listener          = interfaces.Listener
	Capability        = interfaces.Capability
	CapabilitySession = interfaces.CapabilitySession
	RangingService    = interfaces.RangingService
)
