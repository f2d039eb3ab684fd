package platform

import (
	"context"
	"errors"
	"net/http"

	"github.com/nischal-shetty2/DSAStats/internal/config"
	"github.com/nischal-shetty2/DSAStats/internal/model"
)

// Platform identifies one supported coding-practice site.
type Platform string

const (
	LeetCode     Platform = "leetcode"
	GFG          Platform = "gfg"
	Codeforces   Platform = "codeforces"
	InterviewBit Platform = "interviewbit"
)

// ErrNotFound is returned by adapters when the platform has no such user.
// Any other adapter error means the upstream was unreachable or returned a
// shape we couldn't parse; the aggregator treats both the same way.
var ErrNotFound = errors.New("platform: user not found")

// Adapter fetches and normalizes one platform's stats for one username.
// Implementations never panic past their boundary: a failed mandatory call
// becomes (nil, err), nothing else.
type Adapter interface {
	Fetch(ctx context.Context, username string) (*model.PlatformStats, error)
}

// Registry maps platform identifiers to their adapters. Adding a platform
// means registering one adapter here, not touching any call site.
type Registry map[Platform]Adapter

// NewRegistry wires the four production adapters against the configured
// endpoints, sharing a single HTTP client.
func NewRegistry(client *http.Client, cfg *config.Config) Registry {
	if client == nil {
		client = &http.Client{Timeout: cfg.UpstreamTimeout}
	}
	return Registry{
		LeetCode:     &LeetCodeAdapter{Client: client, BaseURL: cfg.LeetCodeURL},
		GFG:          &GFGAdapter{Client: client, BaseURL: cfg.GFGURL},
		Codeforces:   &CodeforcesAdapter{Client: client, BaseURL: cfg.CodeforcesURL},
		InterviewBit: &InterviewBitAdapter{Client: client, BaseURL: cfg.InterviewBitURL},
	}
}

// Lookup returns the adapter for a raw platform key, if it is one we support.
func (r Registry) Lookup(key string) (Adapter, bool) {
	a, ok := r[Platform(key)]
	return a, ok
}
