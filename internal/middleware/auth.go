package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/nischal-shetty2/DSAStats/pkg/token"
)

// userIDLocal is the ctx locals key the auth middleware stores the caller's
// user id under.
const userIDLocal = "userID"

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token and stores the authenticated user id in ctx locals.
func RequireAuth(issuer *token.Issuer) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := BearerUserID(c, issuer)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// BearerUserID extracts and validates the Authorization header without
// failing the request. Used by endpoints where a token is optional.
func BearerUserID(c fiber.Ctx, issuer *token.Issuer) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return "", false
	}
	userID, err := issuer.Parse(raw)
	if err != nil {
		return "", false
	}
	return userID, true
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c fiber.Ctx) string {
	if id, ok := c.Locals(userIDLocal).(string); ok {
		return id
	}
	return ""
}
