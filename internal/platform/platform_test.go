package platform

import (
	"testing"

	"github.com/nischal-shetty2/DSAStats/internal/config"
)

func TestNewRegistry_CoversAllPlatforms(t *testing.T) {
	cfg := &config.Config{
		LeetCodeURL:     "https://leetcode.example/graphql",
		GFGURL:          "https://gfg.example",
		CodeforcesURL:   "https://cf.example/api",
		InterviewBitURL: "https://ib.example/v2",
	}
	registry := NewRegistry(nil, cfg)

	for _, p := range []Platform{LeetCode, GFG, Codeforces, InterviewBit} {
		if registry[p] == nil {
			t.Errorf("registry missing adapter for %q", p)
		}
	}
	if len(registry) != 4 {
		t.Errorf("registry has %d adapters, want 4", len(registry))
	}
}

func TestRegistry_Lookup(t *testing.T) {
	registry := NewRegistry(nil, &config.Config{})

	if _, ok := registry.Lookup("codeforces"); !ok {
		t.Error("lookup(codeforces) should succeed")
	}
	if _, ok := registry.Lookup("hackerrank"); ok {
		t.Error("lookup(hackerrank) should fail")
	}
	if _, ok := registry.Lookup(""); ok {
		t.Error("lookup of empty key should fail")
	}
}
