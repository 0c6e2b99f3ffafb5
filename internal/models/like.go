package models

import (
	"time"
)

// Like target types.
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Like holds the current like state of one user on one target.
// The unique index on (user_id, target_type, target_id) means there is at
// most one row per pair regardless of call concurrency; toggling flips the
// Liked flag in place instead of inserting or deleting rows.
//
// LikedAt records the most recent state-changing transition. The karma
// window is evaluated against the karma ledger rather than this column,
// but it is kept so the last transition stays observable without retaining
// full toggle history.
type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_like_user_target" json:"user_id"`
	TargetType string    `gorm:"size:10;not null;uniqueIndex:idx_like_user_target" json:"target_type"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_like_user_target" json:"target_id"`
	Liked      bool      `gorm:"not null" json:"liked"`
	LikedAt    time.Time `gorm:"not null" json:"liked_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleResult is the authoritative outcome of a like toggle. Callers that
// keep an optimistic local count must overwrite it with LikeCount.
type ToggleResult struct {
	IsLiked   bool  `json:"is_liked"`
	LikeCount int64 `json:"like_count"`
}
