package service

import (
	"context"
	"time"

	"karmafeed/internal/cache"
	"karmafeed/internal/middleware"
	"karmafeed/internal/models"
	"karmafeed/internal/repository"
)

// Leaderboard query bounds, matching the public API contract.
const (
	MaxLeaderboardLimit = 100
	MaxLeaderboardHours = 168 // one week

	// Defaults when the caller omits limit/hours; the background warmer
	// refreshes this pair so the common query is served from cache.
	DefaultLeaderboardLimit = 5
	DefaultLeaderboardHours = 24
)

type LeaderboardService struct {
	karmaRepo repository.KarmaRepository
	userRepo  repository.UserRepository
}

func NewLeaderboardService(
	karmaRepo repository.KarmaRepository,
	userRepo repository.UserRepository,
) *LeaderboardService {
	return &LeaderboardService{
		karmaRepo: karmaRepo,
		userRepo:  userRepo,
	}
}

// ClampLeaderboardParams normalizes caller-supplied limit and hours to the
// supported ranges.
func ClampLeaderboardParams(limit, hours int) (int, int) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	if hours < 1 {
		hours = 1
	}
	if hours > MaxLeaderboardHours {
		hours = MaxLeaderboardHours
	}
	return limit, hours
}

// TopN ranks users by karma earned inside the trailing window. Results are
// cached briefly; the leaderboard is advisory and a slightly stale read is
// acceptable. Ranks are 1-based and contiguous, ties broken by earliest
// account creation, and users with zero in-window karma are absent rather
// than padded in.
func (s *LeaderboardService) TopN(ctx context.Context, limit, hours int) ([]*models.LeaderboardEntry, error) {
	limit, hours = ClampLeaderboardParams(limit, hours)

	var entries []*models.LeaderboardEntry
	filled := false
	err := cache.Aside(ctx, cache.LeaderboardKey(limit, hours), &entries, cache.LeaderboardTTL, func() error {
		filled = true
		computed, err := s.computeTopN(ctx, limit, hours)
		if err != nil {
			return err
		}
		entries = computed
		return nil
	})
	if err != nil {
		return nil, err
	}
	source := "cache"
	if filled {
		source = "db"
	}
	middleware.LeaderboardQueries.WithLabelValues(source).Inc()
	return entries, nil
}

// Refresh recomputes one leaderboard window and overwrites its cache entry.
// The background warmer calls this on an interval so the common query is
// always served warm.
func (s *LeaderboardService) Refresh(ctx context.Context, limit, hours int) error {
	limit, hours = ClampLeaderboardParams(limit, hours)
	entries, err := s.computeTopN(ctx, limit, hours)
	if err != nil {
		return err
	}
	cache.SetJSON(ctx, cache.LeaderboardKey(limit, hours), entries, cache.LeaderboardTTL)
	return nil
}

func (s *LeaderboardService) computeTopN(ctx context.Context, limit, hours int) ([]*models.LeaderboardEntry, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	rows, err := s.karmaRepo.TopSince(ctx, limit, cutoff)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []*models.LeaderboardEntry{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	usersByID, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		user, ok := usersByID[row.UserID]
		if !ok {
			continue
		}
		entries = append(entries, &models.LeaderboardEntry{
			Rank:  len(entries) + 1,
			User:  user,
			Karma: row.Karma,
		})
	}
	return entries, nil
}

// Karma returns the user's karma earned inside the trailing window.
// Never negative: unliked or aged-out contributions simply do not count.
func (s *LeaderboardService) Karma(ctx context.Context, userID uint, hours int) (int64, error) {
	_, hours = ClampLeaderboardParams(1, hours)
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	return s.karmaRepo.SumByUserSince(ctx, userID, cutoff)
}

// Breakdown splits the user's in-window karma by source (post vs comment
// likes) and includes the all-time total.
func (s *LeaderboardService) Breakdown(ctx context.Context, userID uint, hours int) (*models.KarmaBreakdown, int64, error) {
	_, hours = ClampLeaderboardParams(1, hours)
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	breakdown, err := s.karmaRepo.BreakdownByUserSince(ctx, userID, cutoff)
	if err != nil {
		return nil, 0, err
	}
	allTime, err := s.karmaRepo.SumByUserAllTime(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return breakdown, allTime, nil
}
