// Package server contains the HTTP handlers for the engagement API.
package server

import (
	"fmt"

	"karmafeed/internal/middleware"
	"karmafeed/internal/models"
	"karmafeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts?page=N. The feed is newest-first and
// page-numbered; "next" carries the URL of the following page or null on the
// last one.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	userID := middleware.CurrentUserID(c)

	result, err := s.postService.ListPosts(ctx, page, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	var next *string
	if result.HasNext {
		url := fmt.Sprintf("/api/posts/?page=%d", result.Page+1)
		next = &url
	}

	return c.JSON(fiber.Map{
		"results": result.Results,
		"next":    next,
	})
}

// CreatePost handles POST /api/posts (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := middleware.CurrentUserID(c)

	post, err := s.postService.GetPost(ctx, id, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
