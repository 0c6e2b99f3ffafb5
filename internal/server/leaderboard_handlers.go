// Package server contains the HTTP handlers for the engagement API.
package server

import (
	"fmt"

	"karmafeed/internal/models"
	"karmafeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Leaderboard handles GET /api/leaderboard?limit=L&hours=H. The karma field
// name carries the effective window (e.g. "karma_24h") so a client can't
// mistake a custom-window value for the default one. Out-of-range parameters
// are clamped, and the echoed time_window_hours reflects the clamped value.
func (s *Server) Leaderboard(c *fiber.Ctx) error {
	ctx := c.UserContext()

	limit := c.QueryInt("limit", service.DefaultLeaderboardLimit)
	hours := c.QueryInt("hours", service.DefaultLeaderboardHours)
	limit, hours = service.ClampLeaderboardParams(limit, hours)

	entries, err := s.leaderboardService.TopN(ctx, limit, hours)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	karmaKey := fmt.Sprintf("karma_%dh", hours)
	rows := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, fiber.Map{
			"rank":   e.Rank,
			"user":   e.User,
			karmaKey: e.Karma,
		})
	}

	return c.JSON(fiber.Map{
		"leaderboard":       rows,
		"time_window_hours": hours,
	})
}

// MyKarma handles GET /api/leaderboard/me (protected). It reports the
// caller's karma inside the requested window split by source, plus their
// all-time total.
func (s *Server) MyKarma(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	hours := c.QueryInt("hours", service.DefaultLeaderboardHours)
	_, hours = service.ClampLeaderboardParams(service.DefaultLeaderboardLimit, hours)

	breakdown, allTime, err := s.leaderboardService.Breakdown(ctx, userID, hours)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"user_id":             userID,
		"time_window_hours":   hours,
		"post_likes_karma":    breakdown.PostLikesKarma,
		"comment_likes_karma": breakdown.CommentLikesKarma,
		"karma":               breakdown.Total,
		"all_time_karma":      allTime,
	})
}
