package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MaxUsernameLen = 64  // users.*_username VARCHAR(64)
	MaxNameLen     = 64  // users.name VARCHAR(64)
	MaxEmailLen    = 128 // users.email VARCHAR(128)
	MinPasswordLen = 8
)

var (
	// usernameRe covers the handle alphabets of all four platforms:
	// alphanumeric plus dash, underscore and dot.
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	// emailRe is a light sanity check, not RFC validation.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePlatformUsername checks that a handle is well-formed before it is
// sent to any upstream. Returns the trimmed handle, or an error message.
func ValidatePlatformUsername(username string) (string, string) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "username is required"
	}
	if len(username) > MaxUsernameLen {
		return "", "username must be at most 64 characters"
	}
	if !usernameRe.MatchString(username) {
		return "", "username contains invalid characters"
	}
	return username, ""
}

// ValidateEmail checks shape and length of an email address.
func ValidateEmail(email string) (string, string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", "email is required"
	}
	if len(email) > MaxEmailLen {
		return "", "email must be at most 128 characters"
	}
	if !emailRe.MatchString(email) {
		return "", "email is not valid"
	}
	return email, ""
}

// ValidateName trims and bounds a display name.
func ValidateName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "name is required"
	}
	if len(name) > MaxNameLen {
		return "", "name must be at most 64 characters"
	}
	return name, ""
}

// ValidatePassword enforces the minimum length only; anything stronger is
// the user's business.
func ValidatePassword(password string) string {
	if len(password) < MinPasswordLen {
		return "password must be at least 8 characters"
	}
	return ""
}

// ValidatePage parses a 1-based page number, defaulting to 1 for anything
// unparsable or below 1.
func ValidatePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
