package middleware

import (
	"strings"
	"testing"
)

func TestValidatePlatformUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "tourist", "tourist", false},
		{"valid with dot", "john.doe", "john.doe", false},
		{"valid with dash and underscore", "a-b_c", "a-b_c", false},
		{"trims whitespace", "  tourist  ", "tourist", false},
		{"empty", "", "", true},
		{"only whitespace", "   ", "", true},
		{"too long", strings.Repeat("a", 65), "", true},
		{"exactly 64", strings.Repeat("a", 64), strings.Repeat("a", 64), false},
		{"space inside", "john doe", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "usér", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidatePlatformUsername(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "a@b.com", "a@b.com", false},
		{"lowercased", "A@B.COM", "a@b.com", false},
		{"trims whitespace", " a@b.com ", "a@b.com", false},
		{"empty", "", "", true},
		{"no at", "ab.com", "", true},
		{"no domain dot", "a@bcom", "", true},
		{"spaces inside", "a @b.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateEmail(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"valid", "3", 3},
		{"first page", "1", 1},
		{"zero defaults to 1", "0", 1},
		{"negative defaults to 1", "-2", 1},
		{"garbage defaults to 1", "abc", 1},
		{"empty defaults to 1", "", 1},
		{"trims whitespace", " 7 ", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePage(tt.input); got != tt.want {
				t.Errorf("ValidatePage(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/preview/8f14e45f-ce", "/preview/:userid"},
		{"/leaderboard/3", "/leaderboard/:page"},
		{"/api/platform/data", "/api/platform/data"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.path); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
