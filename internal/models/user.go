// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User is a demo identity in the community feed. There is no password:
// the session endpoint resolves users by username only.
// Karma is never stored here; it is always derived from KarmaTransaction rows.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
