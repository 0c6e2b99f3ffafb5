package service

import (
	"context"
	"errors"

	"karmafeed/internal/models"
	"karmafeed/internal/repository"

	"gorm.io/gorm"
)

// DefaultPageSize is the number of posts per feed page.
const DefaultPageSize = 10

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID  uint
	Content string
}

// PostPage is one page of the feed, newest first. HasNext tells the handler
// whether to emit a next-page link.
type PostPage struct {
	Results []*models.Post
	Page    int
	HasNext bool
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > models.MaxPostContentLen {
		return nil, models.NewValidationError("Post too long (max 5000 characters)")
	}

	post := &models.Post{
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return post, nil
}

// ListPosts returns the requested 1-based page of the feed. One extra row is
// fetched to decide whether a next page exists, so two successive pages with
// no intervening writes never overlap and never skip a post.
func (s *PostService) ListPosts(ctx context.Context, page int, currentUserID uint) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * DefaultPageSize
	posts, err := s.postRepo.List(ctx, DefaultPageSize+1, offset, currentUserID)
	if err != nil {
		return nil, err
	}

	hasNext := len(posts) > DefaultPageSize
	if hasNext {
		posts = posts[:DefaultPageSize]
	}

	return &PostPage{
		Results: posts,
		Page:    page,
		HasNext: hasNext,
	}, nil
}
