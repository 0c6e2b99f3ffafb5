// Package server contains the HTTP handlers for the engagement API.
package server

import (
	"karmafeed/internal/middleware"
	"karmafeed/internal/models"
	"karmafeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CommentsForPost handles GET /api/comments/post/:id. Comments come back as
// a nested reply tree; "count" is the total number of comments on the post,
// not just the roots.
func (s *Server) CommentsForPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := middleware.CurrentUserID(c)

	roots, count, err := s.commentService.ListCommentTree(ctx, postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post_id":  postID,
		"count":    count,
		"comments": roots,
	})
}

// CreateComment handles POST /api/comments (protected). The body uses the
// same field names the comment JSON is rendered with: "post" for the post ID
// and "parent" for an optional parent comment ID.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Post    uint   `json:"post"`
		Parent  *uint  `json:"parent"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Post == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Post is required"))
	}

	comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:   userID,
		PostID:   req.Post,
		ParentID: req.Parent,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
