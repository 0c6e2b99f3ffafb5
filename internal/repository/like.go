package repository

import (
	"context"
	"time"

	"karmafeed/internal/models"

	"gorm.io/gorm"
)

// ToggleInput carries everything the ledger needs to flip a like and apply
// its karma side effect in a single transaction. AuthorID is the owner of
// the target content; when it equals UserID (a self-like) the flip still
// happens but no karma moves.
type ToggleInput struct {
	UserID     uint
	TargetType string
	TargetID   uint
	AuthorID   uint
}

// LikeRepository is the durable like ledger. It stores only the current
// boolean state per (user, target) pair plus the timestamp of the last
// state-changing transition; full toggle history is never retained.
type LikeRepository interface {
	// Toggle atomically flips the like state for the pair and returns the
	// resulting state together with the target's new active-liker count.
	// The flip, the karma ledger update and the count are one transaction:
	// no half-applied state is ever observable.
	Toggle(ctx context.Context, in ToggleInput) (*models.ToggleResult, error)
	CountActive(ctx context.Context, targetType string, targetID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Toggle(ctx context.Context, in ToggleInput) (*models.ToggleResult, error) {
	now := time.Now().UTC()
	result := &models.ToggleResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Single atomic read-modify-write: the unique index on
		// (user_id, target_type, target_id) serializes concurrent toggles on
		// the same pair, so the final state always reflects call parity and
		// an update is never lost.
		var liked bool
		if err := tx.Raw(
			`INSERT INTO likes (user_id, target_type, target_id, liked, liked_at, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (user_id, target_type, target_id)
			 DO UPDATE SET liked = NOT likes.liked, liked_at = excluded.liked_at
			 RETURNING liked`,
			in.UserID, in.TargetType, in.TargetID, true, now, now,
		).Scan(&liked).Error; err != nil {
			return err
		}

		if in.AuthorID != in.UserID {
			if liked {
				kind, points := models.KarmaPointsFor(in.TargetType)
				if err := tx.Create(&models.KarmaTransaction{
					UserID:     in.AuthorID,
					LikerID:    in.UserID,
					Kind:       kind,
					Points:     points,
					TargetType: in.TargetType,
					TargetID:   in.TargetID,
					CreatedAt:  now,
				}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.
					Where("liker_id = ? AND target_type = ? AND target_id = ?",
						in.UserID, in.TargetType, in.TargetID).
					Delete(&models.KarmaTransaction{}).Error; err != nil {
					return err
				}
			}
		}

		var count int64
		if err := tx.Model(&models.Like{}).
			Where("target_type = ? AND target_id = ? AND liked", in.TargetType, in.TargetID).
			Count(&count).Error; err != nil {
			return err
		}

		result.IsLiked = liked
		result.LikeCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *likeRepository) CountActive(ctx context.Context, targetType string, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("target_type = ? AND target_id = ? AND liked", targetType, targetID).
		Count(&count).Error
	return count, err
}
