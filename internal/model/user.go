package model

import "time"

// UsernameSet holds the user's handle on each supported platform.
// An empty string means "not connected" — the read boundary normalizes
// NULLs to empty strings so callers never see a null entry.
type UsernameSet struct {
	LeetCode     string `json:"leetcode,omitempty"`
	GFG          string `json:"gfg,omitempty"`
	Codeforces   string `json:"codeforces,omitempty"`
	InterviewBit string `json:"interviewbit,omitempty"`
}

// ByPlatform returns only the connected entries, keyed by platform identifier.
func (s UsernameSet) ByPlatform() map[string]string {
	out := make(map[string]string, 4)
	for key, username := range map[string]string{
		"leetcode":     s.LeetCode,
		"gfg":          s.GFG,
		"codeforces":   s.Codeforces,
		"interviewbit": s.InterviewBit,
	} {
		if username != "" {
			out[key] = username
		}
	}
	return out
}

// Empty reports whether no platform is connected.
func (s UsernameSet) Empty() bool {
	return len(s.ByPlatform()) == 0
}

// User is the persisted account record.
type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Pfp          string      `json:"pfp,omitempty"`
	Usernames    UsernameSet `json:"usernames"`
	TotalSolved  *int        `json:"totalSolved,omitempty"`
	CreatedAt    time.Time   `json:"-"`
}

// UserPublic is the subset of account fields safe to expose on the public
// profile preview.
type UserPublic struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Pfp       string      `json:"pfp,omitempty"`
	Usernames UsernameSet `json:"usernames"`
}

// RegisterRequest is the body for POST /api/user/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UsernameUpdate is the body for PUT /api/user/usernames: a delta keyed by
// platform identifier. An empty string disconnects the platform; anything
// else is verified against the platform before being stored. Unrecognized
// keys are rejected, not ignored.
type UsernameUpdate map[string]string
