package interfaces

import (
	"context"

	domaintypes "nearby/internal/domain/types"
)

// RangingService drives one ranging session from token exchange to teardown.
type RangingService interface {
	Prepare() error
	Supported() bool
	PublishLocalToken(ctx context.Context) (domaintypes.TokenID, error)
	ResolvePeer(ctx context.Context, id domaintypes.TokenID) error
	Start() error
	Invalidate()

	State() domaintypes.SessionState
	LocalToken() domaintypes.DiscoveryToken
	LocalTokenID() domaintypes.TokenID
	PeerToken() domaintypes.DiscoveryToken
	Distances() <-chan domaintypes.DistanceSample
	Lifecycle() <-chan domaintypes.LifecycleEvent
}
