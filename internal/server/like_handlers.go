// Package server contains the HTTP handlers for the engagement API.
package server

import (
	"fmt"

	"karmafeed/internal/middleware"
	"karmafeed/internal/models"

	"github.com/gofiber/fiber/v2"
)

// TogglePostLike handles POST /api/likes/post/:id/toggle (protected)
func (s *Server) TogglePostLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.TargetPost, "Post")
}

// ToggleCommentLike handles POST /api/likes/comment/:id/toggle (protected)
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.TargetComment, "Comment")
}

func (s *Server) toggleLike(c *fiber.Ctx, targetType, label string) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.Toggle(ctx, userID, targetType, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	verb := "unliked"
	if result.IsLiked {
		verb = "liked"
	}
	middleware.LikeToggles.WithLabelValues(targetType, verb).Inc()

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    fmt.Sprintf("%s %s", label, verb),
		"like_count": result.LikeCount,
		"is_liked":   result.IsLiked,
	})
}
