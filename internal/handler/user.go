package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nischal-shetty2/DSAStats/internal/middleware"
	"github.com/nischal-shetty2/DSAStats/internal/model"
	"github.com/nischal-shetty2/DSAStats/internal/repository"
	"github.com/nischal-shetty2/DSAStats/internal/service"
	"github.com/nischal-shetty2/DSAStats/pkg/token"
)

type UserHandler struct {
	users    *repository.UserRepo
	verifier *service.Verifier
	issuer   *token.Issuer
}

func NewUserHandler(users *repository.UserRepo, verifier *service.Verifier, issuer *token.Issuer) *UserHandler {
	return &UserHandler{users: users, verifier: verifier, issuer: issuer}
}

// Register handles POST /api/user/register
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	name, errMsg := middleware.ValidateName(req.Name)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	email, errMsg := middleware.ValidateEmail(req.Email)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	if errMsg := middleware.ValidatePassword(req.Password); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if _, err := h.users.FindByEmail(c.Context(), email); err == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "EMAIL_TAKEN", "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(c.Context(), user); err != nil {
		middleware.Logger.Error().Err(err).Msg("user create failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user")
	}

	signed, err := h.issuer.Issue(user.ID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
	}
	return c.Status(fiber.StatusCreated).JSON(model.TokenResponse{Token: signed})
}

// Login handles POST /api/user/login
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	email, errMsg := middleware.ValidateEmail(req.Email)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	user, err := h.users.FindByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
	}

	signed, err := h.issuer.Issue(user.ID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to issue token")
	}
	return c.JSON(model.TokenResponse{Token: signed})
}

// Verify handles GET /api/user/verify — returns the authenticated account.
func (h *UserHandler) Verify(c fiber.Ctx) error {
	user, err := h.users.FindByID(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to verify user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": model.UserPublic{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Pfp:       user.Pfp,
			Usernames: user.Usernames,
		},
	})
}

// UpdateUsernames handles PUT /api/user/usernames. Each submitted handle is
// verified against its platform before anything is persisted; an empty
// string disconnects the platform without a network call.
func (h *UserHandler) UpdateUsernames(c fiber.Ctx) error {
	var req model.UsernameUpdate
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	if len(req) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FIELDS", "No usernames provided")
	}

	userID := middleware.UserID(c)

	// Validate everything before persisting anything, so a rejected entry
	// never leaves a half-applied update behind.
	verified := make(map[string]*model.PlatformStats)
	for platformKey, username := range req {
		if !h.verifier.Known(platformKey) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM",
				"Unknown platform: "+platformKey)
		}
		if username == "" {
			continue // disconnect, nothing to verify
		}
		trimmed, errMsg := middleware.ValidatePlatformUsername(username)
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req[platformKey] = trimmed

		stats, err := h.verifier.Verify(c.Context(), platformKey, trimmed)
		if err != nil {
			if errors.Is(err, service.ErrUnknownPlatform) {
				return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PLATFORM",
					"Unknown platform: "+platformKey)
			}
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "USERNAME_NOT_FOUND",
				"Could not find "+trimmed+" on "+platformKey)
		}
		verified[platformKey] = stats
	}

	for platformKey, username := range req {
		if err := h.users.SetUsername(c.Context(), userID, platformKey, username); err != nil {
			middleware.Logger.Error().Err(err).Str("platform", platformKey).Msg("username update failed")
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update usernames")
		}
	}

	user, err := h.users.FindByID(c.Context(), userID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"user":     user,
		"verified": verified,
	})
}
