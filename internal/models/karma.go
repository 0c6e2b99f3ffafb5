package models

import (
	"time"
)

// Karma kinds and the fixed points awarded for each.
const (
	KarmaKindPostLike    = "post_like"
	KarmaKindCommentLike = "comment_like"

	KarmaPointsPostLike    = 5
	KarmaPointsCommentLike = 1
)

// KarmaPointsFor returns the points a like on the given target type earns
// for the content author.
func KarmaPointsFor(targetType string) (kind string, points int) {
	if targetType == TargetComment {
		return KarmaKindCommentLike, KarmaPointsCommentLike
	}
	return KarmaKindPostLike, KarmaPointsPostLike
}

// KarmaTransaction records one karma-earning event: a like transitioning to
// active on the author's content. It is the source of truth for all karma
// calculations; the leaderboard aggregates these rows on every read.
//
// A row is created when a like flips false to true and deleted when it flips
// back, so a (liker, target) pair contributes at most once at any moment.
// Self-likes never create a row.
type KarmaTransaction struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// UserID is the content author who earned the points.
	UserID     uint      `gorm:"not null;index:idx_karma_user_created" json:"user_id"`
	LikerID    uint      `gorm:"not null;uniqueIndex:idx_karma_liker_target" json:"liker_id"`
	Kind       string    `gorm:"size:20;not null" json:"kind"`
	Points     int       `gorm:"not null" json:"points"`
	TargetType string    `gorm:"size:10;not null;uniqueIndex:idx_karma_liker_target" json:"target_type"`
	TargetID   uint      `gorm:"not null;uniqueIndex:idx_karma_liker_target" json:"target_id"`
	CreatedAt  time.Time `gorm:"index:idx_karma_user_created;index" json:"created_at"`
}

// LeaderboardEntry is a derived, transient ranking row.
// Rank is 1-based and contiguous; ties are broken by earliest account
// creation, and tied users still get distinct ranks.
type LeaderboardEntry struct {
	Rank  int   `json:"rank"`
	User  *User `json:"user"`
	Karma int64 `json:"karma"`
}

// KarmaBreakdown splits a user's karma in the window by source.
type KarmaBreakdown struct {
	PostLikesKarma    int64 `json:"post_likes_karma"`
	CommentLikesKarma int64 `json:"comment_likes_karma"`
	Total             int64 `json:"total"`
}
