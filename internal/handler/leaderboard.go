package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
	"github.com/nischal-shetty2/DSAStats/internal/service"
	"github.com/nischal-shetty2/DSAStats/pkg/token"
)

type LeaderboardHandler struct {
	svc    *service.LeaderboardService
	users  *repository.UserRepo
	issuer *token.Issuer
}

func NewLeaderboardHandler(svc *service.LeaderboardService, users *repository.UserRepo, issuer *token.Issuer) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc, users: users, issuer: issuer}
}

// Page handles POST /leaderboard/:page. The endpoint is public; when the
// caller presents a valid bearer token, the response additionally carries
// their own entry with an exact rank.
func (h *LeaderboardHandler) Page(c fiber.Ctx) error {
	page := middleware.ValidatePage(c.Params("page"))

	entries, totalPages, err := h.svc.Page(c.Context(), page)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("leaderboard page failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch leaderboard")
	}

	resp := model.LeaderboardPage{
		Users:      entries,
		TotalPages: totalPages,
	}
	if userID, ok := middleware.BearerUserID(c, h.issuer); ok {
		resp.CurrentUser = h.currentUser(c, userID)
	}

	return c.JSON(resp)
}

// currentUser builds the caller's own leaderboard entry. An invalid id or a
// missing snapshot degrades to nil / rank 0 — the page itself still renders.
func (h *LeaderboardHandler) currentUser(c fiber.Ctx, userID string) *model.LeaderboardEntry {
	user, err := h.users.FindByID(c.Context(), userID)
	if err != nil {
		return nil
	}

	entry := &model.LeaderboardEntry{
		UserID: user.ID,
		Name:   user.Name,
		Pfp:    user.Pfp,
	}
	if user.TotalSolved != nil {
		entry.TotalSolved = *user.TotalSolved
	}

	rank, err := h.svc.RankOf(c.Context(), userID)
	if err != nil && !errors.Is(err, service.ErrNotRanked) {
		middleware.Logger.Warn().Err(err).Msg("rank lookup failed")
	}
	entry.Rank = rank
	return entry
}
