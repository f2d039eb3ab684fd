package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
	"github.com/nischal-shetty2/DSAStats/internal/service"
)

// maxImageBytes caps proxied avatar downloads.
const maxImageBytes = 4 << 20

type PlatformHandler struct {
	users      *repository.UserRepo
	aggregator *service.Aggregator
	client     *http.Client
}

func NewPlatformHandler(users *repository.UserRepo, aggregator *service.Aggregator, client *http.Client) *PlatformHandler {
	if client == nil {
		client = http.DefaultClient
	}
	return &PlatformHandler{users: users, aggregator: aggregator, client: client}
}

// GetData handles GET /api/platform/data — aggregated stats for the
// authenticated user's own connected platforms.
func (h *PlatformHandler) GetData(c fiber.Ctx) error {
	user, err := h.users.FindByID(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
	}
	if user.Usernames.Empty() {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "NO_USERNAMES", "No platform usernames connected")
	}

	results := h.aggregator.Aggregate(c.Context(), user.ID, user.Usernames)
	return c.JSON(results)
}

// Preview handles GET /preview/:userid — public profile plus aggregated
// stats for an arbitrary user.
func (h *PlatformHandler) Preview(c fiber.Ctx) error {
	user, err := h.users.FindByID(c.Context(), c.Params("userid"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
	}

	public := model.UserPublic{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Pfp:       user.Pfp,
		Usernames: user.Usernames,
	}
	if user.Usernames.Empty() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"user":    public,
			"error":   "No platform usernames connected",
		})
	}

	results := h.aggregator.Aggregate(c.Context(), user.ID, user.Usernames)
	return c.JSON(fiber.Map{
		"success":   true,
		"user":      public,
		"userStats": results,
	})
}

// Images handles POST /api/platform/img — fetches remote avatars server-side
// and returns them as base64 data URIs, so the share-card renderer isn't
// blocked by the platforms' CORS policies. Images that fail to download come
// back as empty strings rather than failing the batch.
func (h *PlatformHandler) Images(c fiber.Ctx) error {
	var req model.ImageProxyRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	imgs := make(map[string]string, len(req.URLs))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for key, url := range req.URLs {
		wg.Add(1)
		go func(key, url string) {
			defer wg.Done()
			dataURI, err := h.fetchImage(c.Context(), url)
			if err != nil {
				middleware.Logger.Debug().Err(err).Str("key", key).Msg("image fetch failed")
				dataURI = ""
			}
			mu.Lock()
			imgs[key] = dataURI
			mu.Unlock()
		}(key, url)
	}
	wg.Wait()

	return c.JSON(model.ImageProxyResponse{Success: true, Imgs: imgs})
}

func (h *PlatformHandler) fetchImage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("image fetch returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(body)
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(body)), nil
}
