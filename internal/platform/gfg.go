package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nischal-shetty2/DSAStats/internal/model"
)

// GFGAdapter fetches GeeksForGeeks profile stats. Single call, single shape.
type GFGAdapter struct {
	Client  *http.Client
	BaseURL string
}

type gfgResponse struct {
	Data *struct {
		ProfileImageURL     string `json:"profile_image_url"`
		TotalProblemsSolved int    `json:"total_problems_solved"`
		InstituteRank       *int   `json:"institute_rank"`
	} `json:"data"`
}

func (a *GFGAdapter) Fetch(ctx context.Context, username string) (*model.PlatformStats, error) {
	var resp gfgResponse
	endpoint := fmt.Sprintf("%s/%s", a.BaseURL, url.PathEscape(username))
	if err := getJSON(ctx, a.Client, endpoint, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, ErrNotFound
	}

	stats := &model.PlatformStats{
		Avatar:              resp.Data.ProfileImageURL,
		TotalProblemsSolved: resp.Data.TotalProblemsSolved,
	}
	if resp.Data.InstituteRank != nil {
		stats.UniversityRank = intPtr(*resp.Data.InstituteRank)
	}
	return stats, nil
}
