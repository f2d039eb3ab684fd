package platform

import (
	"context"
	"net/http"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/model"
)

// LeetCodeAdapter talks to the LeetCode GraphQL endpoint. It issues two
// independent queries: the public profile (mandatory) and the contest
// ranking (optional — most accounts have no contest history, and that must
// not fail the whole fetch).
type LeetCodeAdapter struct {
	Client  *http.Client
	BaseURL string
}

const leetcodeProfileQuery = `
query userPublicProfile($username: String!) {
  matchedUser(username: $username) {
    username
    profile {
      ranking
      userAvatar
    }
    submitStats: submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
      }
    }
  }
}`

const leetcodeContestQuery = `
query userContestRankingInfo($username: String!) {
  userContestRanking(username: $username) {
    rating
    globalRanking
  }
}`

type graphqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type leetcodeProfileResponse struct {
	Data struct {
		MatchedUser *struct {
			Profile struct {
				Ranking    int    `json:"ranking"`
				UserAvatar string `json:"userAvatar"`
			} `json:"profile"`
			SubmitStats struct {
				ACSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
	} `json:"data"`
}

type leetcodeContestResponse struct {
	Data struct {
		UserContestRanking *struct {
			Rating        float64 `json:"rating"`
			GlobalRanking int     `json:"globalRanking"`
		} `json:"userContestRanking"`
	} `json:"data"`
}

func (a *LeetCodeAdapter) Fetch(ctx context.Context, username string) (*model.PlatformStats, error) {
	vars := map[string]string{"username": username}

	var profile leetcodeProfileResponse
	err := postJSON(ctx, a.Client, a.BaseURL, graphqlRequest{Query: leetcodeProfileQuery, Variables: vars}, &profile)
	if err != nil {
		return nil, err
	}
	matched := profile.Data.MatchedUser
	if matched == nil {
		return nil, ErrNotFound
	}

	stats := &model.PlatformStats{
		Avatar: matched.Profile.UserAvatar,
	}
	for _, bucket := range matched.SubmitStats.ACSubmissionNum {
		if bucket.Difficulty == "All" {
			stats.TotalProblemsSolved = bucket.Count
		}
	}

	// Contest ranking is best-effort: accounts without contest history get
	// a null payload or an error, and the profile data still stands.
	var contest leetcodeContestResponse
	err = postJSON(ctx, a.Client, a.BaseURL, graphqlRequest{Query: leetcodeContestQuery, Variables: vars}, &contest)
	if err != nil {
		middleware.Logger.Debug().Err(err).Str("platform", "leetcode").Str("username", username).
			Msg("contest ranking fetch failed, continuing without it")
		return stats, nil
	}
	if ranking := contest.Data.UserContestRanking; ranking != nil {
		stats.Rating = intPtr(int(ranking.Rating))
		stats.ContestGlobalRank = intPtr(ranking.GlobalRanking)
	}

	return stats, nil
}
