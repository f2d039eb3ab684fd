package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/nischal-shetty2/DSAStats/internal/model"
)

// submissionPageSize bounds the user.status call; Codeforces caps pages at
// 10000 records anyway.
const submissionPageSize = 10000

// CodeforcesAdapter fetches handle info and submission history from the
// public Codeforces REST API. Both calls are mandatory and run in parallel.
type CodeforcesAdapter struct {
	Client  *http.Client
	BaseURL string
}

type cfUserInfoResponse struct {
	Status string `json:"status"`
	Result []struct {
		Handle    string  `json:"handle"`
		Avatar    string  `json:"avatar"`
		Rating    *int    `json:"rating"`
		Rank      *string `json:"rank"`
		MaxRating *int    `json:"maxRating"`
	} `json:"result"`
}

type cfSubmission struct {
	ContestID int `json:"contestId"`
	Problem   struct {
		Index string `json:"index"`
	} `json:"problem"`
	Verdict string `json:"verdict"`
}

type cfStatusResponse struct {
	Status string         `json:"status"`
	Result []cfSubmission `json:"result"`
}

func (a *CodeforcesAdapter) Fetch(ctx context.Context, username string) (*model.PlatformStats, error) {
	handle := url.QueryEscape(username)
	infoURL := fmt.Sprintf("%s/user.info?handles=%s", a.BaseURL, handle)
	statusURL := fmt.Sprintf("%s/user.status?handle=%s&from=1&count=%d", a.BaseURL, handle, submissionPageSize)

	var (
		info      cfUserInfoResponse
		status    cfStatusResponse
		infoErr   error
		statusErr error
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		infoErr = getJSON(ctx, a.Client, infoURL, &info)
	}()
	go func() {
		defer wg.Done()
		statusErr = getJSON(ctx, a.Client, statusURL, &status)
	}()
	wg.Wait()

	if infoErr != nil {
		return nil, infoErr
	}
	if statusErr != nil {
		return nil, statusErr
	}
	if info.Status != "OK" || len(info.Result) == 0 {
		return nil, ErrNotFound
	}
	if status.Status != "OK" {
		return nil, ErrNotFound
	}

	user := info.Result[0]
	stats := &model.PlatformStats{
		Avatar:              user.Avatar,
		TotalProblemsSolved: countSolved(status.Result),
	}

	// Unrated accounts omit all three fields; include them only as a set.
	if user.Rating != nil && user.Rank != nil && user.MaxRating != nil {
		stats.Rating = intPtr(*user.Rating)
		stats.Rank = strPtr(*user.Rank)
		stats.MaxRating = intPtr(*user.MaxRating)
	}

	return stats, nil
}

// countSolved counts distinct accepted problems. A problem is identified by
// (contestId, index) so resubmitting an accepted problem never inflates the
// count.
func countSolved(submissions []cfSubmission) int {
	type problemKey struct {
		contestID int
		index     string
	}
	solved := make(map[problemKey]struct{})
	for _, sub := range submissions {
		if sub.Verdict != "OK" {
			continue
		}
		solved[problemKey{sub.ContestID, sub.Problem.Index}] = struct{}{}
	}
	return len(solved)
}
