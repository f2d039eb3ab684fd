package service

import (
	"context"
	"errors"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/platform"
)

var (
	// ErrUnknownPlatform means the caller passed a platform key we don't
	// support. No network call is made in that case.
	ErrUnknownPlatform = errors.New("unknown platform")
	// ErrUsernameNotFound means the platform has no account for the handle.
	ErrUsernameNotFound = errors.New("username not found on platform")
)

// Verifier validates a newly submitted username against its platform before
// it is persisted. It calls the adapter directly, bypassing the cache: this
// is a one-shot check of a value that was never fetched before.
type Verifier struct {
	registry platform.Registry
}

func NewVerifier(registry platform.Registry) *Verifier {
	return &Verifier{registry: registry}
}

// Known reports whether a platform key has a registered adapter.
func (v *Verifier) Known(platformKey string) bool {
	_, ok := v.registry.Lookup(platformKey)
	return ok
}

// Verify resolves the adapter for platformKey and fetches the candidate
// username. Returns the fetched stats on success so the caller can show
// them immediately.
func (v *Verifier) Verify(ctx context.Context, platformKey, username string) (*model.PlatformStats, error) {
	adapter, ok := v.registry.Lookup(platformKey)
	if !ok {
		return nil, ErrUnknownPlatform
	}

	stats, err := adapter.Fetch(ctx, username)
	if err != nil {
		middleware.Logger.Info().Err(err).
			Str("platform", platformKey).
			Str("username", username).
			Msg("username verification failed")
		return nil, ErrUsernameNotFound
	}
	return stats, nil
}
