package service

import (
	"context"
	"errors"

	"karmafeed/internal/models"
	"karmafeed/internal/repository"

	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo    repository.LikeRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Toggle flips the caller's like state on the target and returns the
// resulting state with the authoritative new like count. Two successive
// calls from the same user always alternate: the observable state reflects
// the parity of calls, never a no-op.
//
// Self-likes are allowed; they just never move karma.
func (s *LikeService) Toggle(ctx context.Context, userID uint, targetType string, targetID uint) (*models.ToggleResult, error) {
	if targetType != models.TargetPost && targetType != models.TargetComment {
		return nil, models.NewValidationError("Invalid like target type")
	}

	authorID, err := s.resolveAuthor(ctx, targetType, targetID)
	if err != nil {
		return nil, err
	}

	return s.likeRepo.Toggle(ctx, repository.ToggleInput{
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		AuthorID:   authorID,
	})
}

func (s *LikeService) resolveAuthor(ctx context.Context, targetType string, targetID uint) (uint, error) {
	switch targetType {
	case models.TargetPost:
		post, err := s.postRepo.GetByID(ctx, targetID, 0)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, models.NewNotFoundError("Post", targetID)
			}
			return 0, err
		}
		return post.UserID, nil
	default:
		comment, err := s.commentRepo.GetByID(ctx, targetID, 0)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, models.NewNotFoundError("Comment", targetID)
			}
			return 0, err
		}
		return comment.UserID, nil
	}
}
