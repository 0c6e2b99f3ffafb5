package models

import (
	"time"
)

// MaxPostContentLen is the maximum allowed length of post content.
const MaxPostContentLen = 5000

// Post is a text post in the community feed.
// Counts are never persisted; they are computed at query time from the
// likes and comments tables.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"-"`
	Author  User   `gorm:"foreignKey:UserID" json:"author"`
	// LikeCount is not persisted; computed at query time
	LikeCount int `gorm:"->" json:"like_count"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"->" json:"comment_count"`
	// IsLiked indicates whether the current requesting user liked this post (computed)
	IsLiked   bool      `gorm:"->" json:"is_liked_by_user"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
