package repository

import (
	"context"
	"time"

	"karmafeed/internal/models"

	"gorm.io/gorm"
)

// KarmaRow is one aggregated leaderboard row before user details are attached.
type KarmaRow struct {
	UserID uint
	Karma  int64
}

// KarmaRepository reads the karma ledger. Rankings are always computed from
// the karma_transactions rows at call time; no total is ever stored on users.
type KarmaRepository interface {
	// TopSince aggregates karma earned since cutoff, ordered by karma
	// descending with ties broken by earliest account creation. Users with
	// no in-window karma are simply absent.
	TopSince(ctx context.Context, limit int, cutoff time.Time) ([]KarmaRow, error)
	SumByUserSince(ctx context.Context, userID uint, cutoff time.Time) (int64, error)
	BreakdownByUserSince(ctx context.Context, userID uint, cutoff time.Time) (*models.KarmaBreakdown, error)
	SumByUserAllTime(ctx context.Context, userID uint) (int64, error)
}

type karmaRepository struct {
	db *gorm.DB
}

// NewKarmaRepository creates a new KarmaRepository
func NewKarmaRepository(db *gorm.DB) KarmaRepository {
	return &karmaRepository{db: db}
}

func (r *karmaRepository) TopSince(ctx context.Context, limit int, cutoff time.Time) ([]KarmaRow, error) {
	var rows []KarmaRow
	err := r.db.WithContext(ctx).
		Table("karma_transactions").
		Select("karma_transactions.user_id, SUM(karma_transactions.points) AS karma").
		Joins("JOIN users ON users.id = karma_transactions.user_id").
		Where("karma_transactions.created_at >= ?", cutoff).
		Group("karma_transactions.user_id, users.created_at, users.id").
		Having("SUM(karma_transactions.points) > 0").
		Order("karma DESC, users.created_at ASC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *karmaRepository) SumByUserSince(ctx context.Context, userID uint, cutoff time.Time) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("SUM(points)").
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *karmaRepository) BreakdownByUserSince(ctx context.Context, userID uint, cutoff time.Time) (*models.KarmaBreakdown, error) {
	var rows []struct {
		Kind  string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("kind, SUM(points) AS total").
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := &models.KarmaBreakdown{}
	for _, row := range rows {
		switch row.Kind {
		case models.KarmaKindPostLike:
			breakdown.PostLikesKarma = row.Total
		case models.KarmaKindCommentLike:
			breakdown.CommentLikesKarma = row.Total
		}
	}
	breakdown.Total = breakdown.PostLikesKarma + breakdown.CommentLikesKarma
	return breakdown, nil
}

func (r *karmaRepository) SumByUserAllTime(ctx context.Context, userID uint) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.KarmaTransaction{}).
		Select("SUM(points)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
