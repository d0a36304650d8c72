package interfaces

import (
	"context"

	domaintypes "nearby/internal/domain/types"
)

// DirectoryClient publishes and fetches discovery tokens on the remote directory.
type DirectoryClient interface {
	Publish(ctx context.Context, token domaintypes.DiscoveryToken) (domaintypes.TokenID, error)
	Fetch(ctx context.Context, id domaintypes.TokenID) (domaintypes.DiscoveryToken, error)
}

// TokenStore holds directory entries on the server side.
type TokenStore interface {
	Put(token domaintypes.DiscoveryToken) (domaintypes.TokenID, error)
	Get(id domaintypes.TokenID) (domaintypes.DiscoveryToken, bool, error)
}
