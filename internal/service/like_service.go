package service

import (
	"context"

	"circleapp/internal/apperrors"
	"circleapp/internal/models"
	"circleapp/internal/repository"
)

type LikeService interface {
	Toggle(ctx context.Context, userID, threadID string) (*models.Like, bool, error)
}

type likeService struct {
	likeRepo   repository.LikeRepository
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
}

func NewLikeService(likeRepo repository.LikeRepository, threadRepo repository.ThreadRepository,
	userRepo repository.UserRepository) LikeService {
	return &likeService{
		likeRepo:   likeRepo,
		threadRepo: threadRepo,
		userRepo:   userRepo,
	}
}

// Toggle - лайк как переключатель: на пару (user, thread) существует
// не больше одной записи. Возвращает (nil, false) при снятии лайка.
func (s *likeService) Toggle(ctx context.Context, userID, threadID string) (*models.Like, bool, error) {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, apperrors.ErrUserNotFound
	}

	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return nil, false, err
	}

	existingLike, err := s.likeRepo.GetByUserAndThread(ctx, userID, threadID)
	if err != nil {
		return nil, false, err
	}

	if existingLike != nil {
		if err := s.likeRepo.DeleteLike(ctx, existingLike.LikeID); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	like := &models.Like{
		UserID:   userID,
		ThreadID: threadID,
	}

	if err := s.likeRepo.CreateLike(ctx, like); err != nil {
		return nil, false, err
	}

	return like, true, nil
}
