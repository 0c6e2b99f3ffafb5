// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"karmafeed/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// MaxDays bounds how far back generated content timestamps reach.
	// A spread of timestamps matters here: the leaderboard is windowed, so
	// demo data must include both in-window and aged-out engagement.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a random instant between now and MaxDays ago.
func (f *Factory) pastTime() time.Time {
	spread := time.Duration(f.opts.MaxDays) * 24 * time.Hour
	return time.Now().UTC().Add(-time.Duration(f.rng.Int63n(int64(spread))))
}

// timeAfter returns a random instant between t and now, keeping child
// content strictly newer than its parent.
func (f *Factory) timeAfter(t time.Time) time.Time {
	gap := time.Since(t)
	if gap <= time.Minute {
		return t.Add(time.Second)
	}
	return t.Add(time.Duration(f.rng.Int63n(int64(gap))))
}

// BuildUser constructs an unsaved user with a unique fake identity.
func (f *Factory) BuildUser(n int) *models.User {
	username := strings.ToLower(gofakeit.Username())
	// gofakeit can repeat; suffix with the ordinal to keep the unique index happy.
	username = fmt.Sprintf("%s%d", username, n)

	return &models.User{
		Username:  username,
		Bio:       gofakeit.Sentence(8),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		CreatedAt: f.pastTime(),
	}
}

// BuildPost constructs an unsaved post authored by the given user.
func (f *Factory) BuildPost(author *models.User) *models.Post {
	createdAt := f.timeAfter(author.CreatedAt)
	return &models.Post{
		UserID:    author.ID,
		Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// BuildComment constructs an unsaved comment, optionally replying to parent.
func (f *Factory) BuildComment(author *models.User, post *models.Post, parent *models.Comment) *models.Comment {
	after := post.CreatedAt
	depth := 0
	var parentID *uint
	if parent != nil {
		after = parent.CreatedAt
		depth = parent.Depth + 1
		parentID = &parent.ID
	}

	createdAt := f.timeAfter(after)
	return &models.Comment{
		UserID:    author.ID,
		PostID:    post.ID,
		ParentID:  parentID,
		Depth:     depth,
		Content:   gofakeit.Sentence(f.rng.Intn(12) + 3),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
