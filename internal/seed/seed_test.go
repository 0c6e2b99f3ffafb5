package seed

import (
	"fmt"
	"testing"

	"karmafeed/internal/database"
	"karmafeed/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeedPopulatesAllTables(t *testing.T) {
	db := setupSeedDB(t)

	seeder := NewSeeder(db, Options{NumUsers: 8, NumPosts: 20, MaxDays: 14})
	require.NoError(t, seeder.Seed())

	var users, posts, comments int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)

	assert.EqualValues(t, 8, users)
	assert.EqualValues(t, 20, posts)
	assert.Positive(t, comments)
}

func TestSeedKarmaMatchesLikes(t *testing.T) {
	db := setupSeedDB(t)

	seeder := NewSeeder(db, Options{NumUsers: 10, NumPosts: 25, MaxDays: 7})
	require.NoError(t, seeder.Seed())

	// Every karma row must correspond to an active like, and no like of a
	// user's own content may carry karma.
	var orphans int64
	require.NoError(t, db.Model(&models.KarmaTransaction{}).
		Joins("JOIN likes ON likes.user_id = karma_transactions.liker_id"+
			" AND likes.target_type = karma_transactions.target_type"+
			" AND likes.target_id = karma_transactions.target_id").
		Where("likes.liked = ?", false).
		Count(&orphans).Error)
	assert.Zero(t, orphans)

	var selfKarma int64
	require.NoError(t, db.Model(&models.KarmaTransaction{}).
		Where("liker_id = user_id").
		Count(&selfKarma).Error)
	assert.Zero(t, selfKarma)

	var badPoints int64
	require.NoError(t, db.Model(&models.KarmaTransaction{}).
		Where("(target_type = ? AND points != ?) OR (target_type = ? AND points != ?)",
			models.TargetPost, models.KarmaPointsPostLike,
			models.TargetComment, models.KarmaPointsCommentLike).
		Count(&badPoints).Error)
	assert.Zero(t, badPoints)
}

func TestSeedClean(t *testing.T) {
	db := setupSeedDB(t)

	seeder := NewSeeder(db, Options{NumUsers: 4, NumPosts: 6})
	require.NoError(t, seeder.Seed())

	reseeder := NewSeeder(db, Options{NumUsers: 3, NumPosts: 5, ShouldClean: true})
	require.NoError(t, reseeder.Seed())

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 3, users, "clean runs replace prior data")
}

func TestFactoryTimestampsStayOrdered(t *testing.T) {
	f := NewFactory(nil, Options{MaxDays: 10})

	for i := 0; i < 50; i++ {
		user := f.BuildUser(i)
		post := f.BuildPost(user)
		if post.CreatedAt.Before(user.CreatedAt) {
			t.Fatalf("post at %v predates its author at %v", post.CreatedAt, user.CreatedAt)
		}
	}
}
