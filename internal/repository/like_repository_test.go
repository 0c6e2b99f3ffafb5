package repository

import (
	"context"
	"testing"

	"karmafeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleParity(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author, "hello")

	in := ToggleInput{UserID: liker.ID, TargetType: models.TargetPost, TargetID: post.ID, AuthorID: author.ID}

	// Odd number of calls ends liked, even ends unliked, regardless of count.
	for i := 0; i < 5; i++ {
		res, err := repo.Toggle(ctx, in)
		require.NoError(t, err)

		wantLiked := i%2 == 0
		assert.Equal(t, wantLiked, res.IsLiked, "toggle %d", i+1)
		if wantLiked {
			assert.Equal(t, int64(1), res.LikeCount)
		} else {
			assert.Equal(t, int64(0), res.LikeCount)
		}
	}

	// Exactly one row per (user, target) pair no matter how often it flips.
	var rows int64
	require.NoError(t, db.Model(&models.Like{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestToggleKarmaLifecycle(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	liker := createTestUser(t, db, "liker")
	post := createTestPost(t, db, author, "post content")
	comment := createTestComment(t, db, liker, post, nil, "a comment")

	karmaCount := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.KarmaTransaction{}).Count(&n).Error)
		return n
	}

	// Post like earns the author 5 points.
	_, err := repo.Toggle(ctx, ToggleInput{
		UserID: liker.ID, TargetType: models.TargetPost, TargetID: post.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)

	var txn models.KarmaTransaction
	require.NoError(t, db.First(&txn).Error)
	assert.Equal(t, author.ID, txn.UserID)
	assert.Equal(t, liker.ID, txn.LikerID)
	assert.Equal(t, models.KarmaKindPostLike, txn.Kind)
	assert.Equal(t, models.KarmaPointsPostLike, txn.Points)

	// Comment like earns the comment's author 1 point.
	_, err = repo.Toggle(ctx, ToggleInput{
		UserID: author.ID, TargetType: models.TargetComment, TargetID: comment.ID, AuthorID: liker.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), karmaCount())

	var commentTxn models.KarmaTransaction
	require.NoError(t, db.Where("target_type = ?", models.TargetComment).First(&commentTxn).Error)
	assert.Equal(t, models.KarmaKindCommentLike, commentTxn.Kind)
	assert.Equal(t, models.KarmaPointsCommentLike, commentTxn.Points)

	// Unlike removes the ledger row: karma reflects only active likes.
	_, err = repo.Toggle(ctx, ToggleInput{
		UserID: liker.ID, TargetType: models.TargetPost, TargetID: post.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), karmaCount())

	// Re-like creates exactly one fresh row, never a duplicate.
	_, err = repo.Toggle(ctx, ToggleInput{
		UserID: liker.ID, TargetType: models.TargetPost, TargetID: post.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), karmaCount())

	var postRows int64
	require.NoError(t, db.Model(&models.KarmaTransaction{}).
		Where("target_type = ? AND target_id = ?", models.TargetPost, post.ID).
		Count(&postRows).Error)
	assert.Equal(t, int64(1), postRows)
}

func TestToggleSelfLikeEarnsNoKarma(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "narcissist")
	post := createTestPost(t, db, author, "my own post")

	res, err := repo.Toggle(ctx, ToggleInput{
		UserID: author.ID, TargetType: models.TargetPost, TargetID: post.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)

	// The like itself lands and counts.
	assert.True(t, res.IsLiked)
	assert.Equal(t, int64(1), res.LikeCount)

	var karmaRows int64
	require.NoError(t, db.Model(&models.KarmaTransaction{}).Count(&karmaRows).Error)
	assert.Equal(t, int64(0), karmaRows)

	// And unliking it leaves the ledger untouched too.
	_, err = repo.Toggle(ctx, ToggleInput{
		UserID: author.ID, TargetType: models.TargetPost, TargetID: post.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.KarmaTransaction{}).Count(&karmaRows).Error)
	assert.Equal(t, int64(0), karmaRows)
}

func TestToggleCountsAreIndependentPerTarget(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	postA := createTestPost(t, db, author, "first")
	postB := createTestPost(t, db, author, "second")

	for _, u := range []*models.User{alice, bob} {
		_, err := repo.Toggle(ctx, ToggleInput{
			UserID: u.ID, TargetType: models.TargetPost, TargetID: postA.ID, AuthorID: author.ID,
		})
		require.NoError(t, err)
	}
	res, err := repo.Toggle(ctx, ToggleInput{
		UserID: alice.ID, TargetType: models.TargetPost, TargetID: postB.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)

	countA, err := repo.CountActive(ctx, models.TargetPost, postA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countA)

	// Comment likes live in the same table but a different target type, so
	// they must not bleed into post counts.
	comment := createTestComment(t, db, author, postA, nil, "separate id space")
	_, err = repo.Toggle(ctx, ToggleInput{
		UserID: bob.ID, TargetType: models.TargetComment, TargetID: comment.ID, AuthorID: author.ID,
	})
	require.NoError(t, err)

	countA, err = repo.CountActive(ctx, models.TargetPost, postA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countA)
}
