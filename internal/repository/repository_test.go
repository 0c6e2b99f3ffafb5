package repository

import (
	"fmt"
	"testing"
	"time"

	"karmafeed/internal/database"
	"karmafeed/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// Each database gets a unique name so parallel tests never share state; the
// shared cache keeps it alive across the pooled connections gorm opens.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: author.ID, Content: content}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func createTestComment(t *testing.T, db *gorm.DB, author *models.User, post *models.Post, parent *models.Comment, content string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		UserID:  author.ID,
		PostID:  post.ID,
		Content: content,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
		comment.Depth = parent.Depth + 1
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return comment
}

// backdate shifts a karma row's created_at so window tests can age it out.
func backdateKarma(t *testing.T, db *gorm.DB, likerID uint, targetType string, targetID uint, to time.Time) {
	t.Helper()
	err := db.Model(&models.KarmaTransaction{}).
		Where("liker_id = ? AND target_type = ? AND target_id = ?", likerID, targetType, targetID).
		Update("created_at", to).Error
	if err != nil {
		t.Fatalf("backdate karma: %v", err)
	}
}
