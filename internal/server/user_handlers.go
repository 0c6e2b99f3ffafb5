// Package server contains the HTTP handlers for the engagement API.
package server

import (
	"errors"
	"time"

	"karmafeed/internal/middleware"
	"karmafeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// sessionTTL bounds how long a demo session cookie stays valid.
const sessionTTL = 7 * 24 * time.Hour

// ListUsers handles GET /api/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(users)
}

// CurrentSession handles GET /api/users/me. A resolved session answers with
// the bare user object; an anonymous visitor is not an error and gets
// {"user": null} with a 200 so the client can render the logged-out state
// without special-casing.
func (s *Server) CurrentSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID := middleware.CurrentUserID(c)
	if userID == 0 {
		return c.JSON(fiber.Map{"user": nil})
	}

	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		// A stale cookie pointing at a deleted user degrades to anonymous.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return c.JSON(fiber.Map{"user": nil})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(user)
}

// SetSession handles POST /api/users/me. It resolves an existing demo user by
// username, issues the session cookie, and answers with the bare user object;
// unknown usernames are a 404, never an implicit signup.
func (s *Server) SetSession(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.ResolveByUsername(ctx, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := middleware.IssueSessionToken(user.ID, sessionTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production",
		Path:     "/",
	})

	return c.JSON(user)
}

// ClearSession handles DELETE /api/users/me. It answers 204 with no body;
// clearing an already-absent session is a no-op success.
func (s *Server) ClearSession(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.Env == "production",
		Path:     "/",
	})

	return c.SendStatus(fiber.StatusNoContent)
}
