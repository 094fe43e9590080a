package service

import (
	"context"

	"circleapp/internal/apperrors"
	"circleapp/internal/models"
	"circleapp/internal/repository"
)

type FollowService interface {
	Toggle(ctx context.Context, followerID, followingID string) (*models.Follow, bool, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Toggle - подписка как переключатель: повторный вызов снимает подписку.
// Возвращает (nil, false) при отписке.
func (s *followService) Toggle(ctx context.Context, followerID, followingID string) (*models.Follow, bool, error) {
	if followerID == followingID {
		return nil, false, apperrors.ErrSelfFollow
	}

	exists, err := s.userRepo.ExistsByID(ctx, followingID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, apperrors.ErrUserNotFound
	}

	exists, err = s.userRepo.ExistsByID(ctx, followerID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, apperrors.ErrUserNotFound
	}

	existingFollow, err := s.followRepo.GetByPair(ctx, followerID, followingID)
	if err != nil {
		return nil, false, err
	}

	if existingFollow != nil {
		if err := s.followRepo.DeleteFollow(ctx, existingFollow.FollowID); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}

	if err := s.followRepo.CreateFollow(ctx, follow); err != nil {
		return nil, false, err
	}

	return follow, true, nil
}
