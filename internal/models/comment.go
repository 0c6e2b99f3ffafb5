package models

import (
	"time"
)

// MaxCommentContentLen is the maximum allowed length of comment content.
const MaxCommentContentLen = 2000

// Comment is a comment on a post, supporting nested replies via an
// adjacency list. ParentID nil means a top-level comment on the post;
// non-nil means a reply to another comment on the same post. A parent must
// always have been created strictly earlier than its children, which is
// enforced at insert time and rules out cycles.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index:idx_comment_post_created" json:"post"`
	ParentID *uint  `gorm:"index" json:"parent"`
	UserID   uint   `gorm:"not null" json:"-"`
	Author   User   `gorm:"foreignKey:UserID" json:"author"`
	Content  string `gorm:"type:text;not null" json:"content"`
	// Depth in the tree: 0 = top-level, 1 = reply to top-level, and so on.
	Depth int `gorm:"not null;default:0" json:"depth"`
	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// IsLiked indicates whether the current requesting user liked this comment (computed)
	IsLiked   bool      `gorm:"->" json:"is_liked_by_user"`
	CreatedAt time.Time `gorm:"index:idx_comment_post_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
