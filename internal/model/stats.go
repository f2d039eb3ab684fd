package model

// PlatformStats is the normalized per-platform result every adapter produces.
// Optional fields are pointers: a platform that doesn't report a value leaves
// the field nil and it is omitted from JSON, so "rating present" is a
// structural fact rather than a key probe.
type PlatformStats struct {
	Avatar              string  `json:"avatar"`
	TotalProblemsSolved int     `json:"totalProblemsSolved"`
	Rating              *int    `json:"rating,omitempty"`
	Rank                *string `json:"rank,omitempty"`
	MaxRating           *int    `json:"maxRating,omitempty"`
	UniversityRank      *int    `json:"universityRank,omitempty"`
	ContestGlobalRank   *int    `json:"contestGlobalRank,omitempty"`
}

// LeaderboardEntry is the denormalized snapshot row served on the leaderboard.
type LeaderboardEntry struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Pfp         string `json:"pfp"`
	TotalSolved int    `json:"totalSolved"`
	Rank        int    `json:"rank"`
}

// LeaderboardPage is the response for one leaderboard page. CurrentUser is
// populated only when the caller presented a valid token.
type LeaderboardPage struct {
	Users       []LeaderboardEntry `json:"users"`
	CurrentUser *LeaderboardEntry  `json:"currentUser"`
	TotalPages  int                `json:"totalPages"`
}

// ImageProxyRequest asks the server to inline remote avatars as data URIs.
type ImageProxyRequest struct {
	URLs map[string]string `json:"urls"`
}

// ImageProxyResponse maps each requested key to a base64 data URI, or an
// empty string when that image could not be fetched.
type ImageProxyResponse struct {
	Success bool              `json:"success"`
	Imgs    map[string]string `json:"imgs"`
}
