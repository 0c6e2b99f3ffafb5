package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"karmafeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func requireAppErr(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateCommentValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := new(MockPostRepository)
	postRepo.On("Exists", mock.Anything, uint(404)).Return(false, nil)
	postRepo.On("Exists", mock.Anything, uint(1)).Return(true, nil)

	svc := NewCommentService(new(MockCommentRepository), postRepo)

	_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 404, Content: "hi"})
	requireAppErr(t, err, "NOT_FOUND")

	_, err = svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: ""})
	requireAppErr(t, err, "VALIDATION_ERROR")

	long := strings.Repeat("x", models.MaxCommentContentLen+1)
	_, err = svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, Content: long})
	requireAppErr(t, err, "VALIDATION_ERROR")
}

func TestCreateCommentParentChecks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := new(MockPostRepository)
	postRepo.On("Exists", mock.Anything, uint(1)).Return(true, nil)

	commentRepo := new(MockCommentRepository)
	commentRepo.On("GetByID", mock.Anything, uint(77), uint(0)).Return(nil, gorm.ErrRecordNotFound)
	commentRepo.On("GetByID", mock.Anything, uint(88), uint(0)).
		Return(&models.Comment{ID: 88, PostID: 2}, nil)

	svc := NewCommentService(commentRepo, postRepo)

	// A missing parent is a bad request, not a 404: the post is the
	// addressed resource and it exists.
	_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, ParentID: ptr(77), Content: "hi"})
	requireAppErr(t, err, "VALIDATION_ERROR")

	// Replying across posts is rejected.
	_, err = svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1, ParentID: ptr(88), Content: "hi"})
	requireAppErr(t, err, "VALIDATION_ERROR")
}

func TestCreateCommentAssignsDepth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	postRepo := new(MockPostRepository)
	postRepo.On("Exists", mock.Anything, uint(1)).Return(true, nil)

	commentRepo := new(MockCommentRepository)
	commentRepo.On("GetByID", mock.Anything, uint(10), uint(0)).
		Return(&models.Comment{ID: 10, PostID: 1, Depth: 2}, nil)
	commentRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.Depth == 3 && c.PostID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Comment).ID = 11
	}).Return(nil)
	commentRepo.On("GetByID", mock.Anything, uint(11), uint(5)).
		Return(&models.Comment{ID: 11, PostID: 1, Depth: 3, CreatedAt: time.Now()}, nil)

	svc := NewCommentService(commentRepo, postRepo)

	created, err := svc.CreateComment(ctx, CreateCommentInput{
		UserID: 5, PostID: 1, ParentID: ptr(10), Content: "nested",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Depth)
	commentRepo.AssertExpectations(t)
}

func TestListCommentTreeMissingPost(t *testing.T) {
	t.Parallel()

	postRepo := new(MockPostRepository)
	postRepo.On("Exists", mock.Anything, uint(9)).Return(false, nil)

	svc := NewCommentService(new(MockCommentRepository), postRepo)

	_, _, err := svc.ListCommentTree(context.Background(), 9, 0)
	requireAppErr(t, err, "NOT_FOUND")
}

func TestListCommentTreeCountsAllComments(t *testing.T) {
	t.Parallel()

	postRepo := new(MockPostRepository)
	postRepo.On("Exists", mock.Anything, uint(1)).Return(true, nil)

	commentRepo := new(MockCommentRepository)
	commentRepo.On("ListByPost", mock.Anything, uint(1), uint(0)).Return([]*models.Comment{
		flatComment(1, 1, nil, 1),
		flatComment(2, 1, ptr(1), 2),
		flatComment(3, 1, ptr(2), 3),
	}, nil)

	svc := NewCommentService(commentRepo, postRepo)

	roots, count, err := svc.ListCommentTree(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count, "count covers the whole thread, not just roots")
	require.Len(t, roots, 1)
	assert.Equal(t, 2, roots[0].ReplyCount)
}
