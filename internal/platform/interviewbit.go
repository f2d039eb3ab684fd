package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nischal-shetty2/DSAStats/internal/model"
)

// InterviewBitAdapter fetches profile and submission stats. Two sequential
// calls, both mandatory.
type InterviewBitAdapter struct {
	Client  *http.Client
	BaseURL string
}

type ibProfileResponse struct {
	Username       string `json:"username"`
	AvatarURL      string `json:"avatar_url"`
	GlobalRank     *int   `json:"global_rank"`
	UniversityRank string `json:"university_rank"`
}

type ibSubmissionsResponse struct {
	TotalProblemsSolved int `json:"total_problems_solved"`
}

func (a *InterviewBitAdapter) Fetch(ctx context.Context, username string) (*model.PlatformStats, error) {
	id := url.QueryEscape(username)

	var profile ibProfileResponse
	profileURL := fmt.Sprintf("%s/profile/username?id=%s", a.BaseURL, id)
	if err := getJSON(ctx, a.Client, profileURL, &profile); err != nil {
		return nil, err
	}
	if profile.Username == "" {
		return nil, ErrNotFound
	}

	var submissions ibSubmissionsResponse
	submissionsURL := fmt.Sprintf("%s/profile/submissions?id=%s", a.BaseURL, id)
	if err := getJSON(ctx, a.Client, submissionsURL, &submissions); err != nil {
		return nil, err
	}

	stats := &model.PlatformStats{
		Avatar:              profile.AvatarURL,
		TotalProblemsSolved: submissions.TotalProblemsSolved,
	}
	if profile.GlobalRank != nil {
		stats.ContestGlobalRank = intPtr(*profile.GlobalRank)
	}
	// University rank arrives as a string and is blank for users with no
	// listed institution.
	if profile.UniversityRank != "" {
		if rank, err := strconv.Atoi(profile.UniversityRank); err == nil {
			stats.UniversityRank = intPtr(rank)
		}
	}
	return stats, nil
}
