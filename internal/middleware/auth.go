package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"karmafeed/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// SessionCookie is the cookie that carries the signed session token.
const SessionCookie = "karmafeed_session"

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// IssueSessionToken signs a session JWT for the given user ID. The demo login
// resolves users by username only, so the token is the entire session state.
func IssueSessionToken(userID uint, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// sessionUserID extracts and validates the session token from the request,
// returning the resolved user ID. The token is read from the session cookie
// first, with an Authorization bearer header fallback for non-browser clients.
func sessionUserID(c *fiber.Ctx) (uint, error) {
	tokenString := c.Cookies(SessionCookie)
	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return 0, fmt.Errorf("no session")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return 0, fmt.Errorf("invalid authorization header format")
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	subClaim, ok := claims["sub"]
	if !ok {
		return 0, fmt.Errorf("invalid token structure - missing subject")
	}
	subStr, ok := subClaim.(string)
	if !ok {
		return 0, fmt.Errorf("invalid token subject type")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}

	return uint(userIDVal), nil
}

// AuthRequired is a middleware that enforces a resolved session identity for
// mutating routes. Calling a protected route without one is an authorization
// error, never a silent no-op.
func AuthRequired(c *fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth resolves the session identity when present but never rejects
// the request. Read-side handlers use it to compute per-viewer fields such
// as is_liked_by_user.
func OptionalAuth(c *fiber.Ctx) error {
	if userID, err := sessionUserID(c); err == nil {
		c.Locals("userID", userID)
	}
	return c.Next()
}

// CurrentUserID returns the resolved user ID from locals, or 0 when the
// request carries no session.
func CurrentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
