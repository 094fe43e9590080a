package service

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"circleapp/internal/apperrors"
	"circleapp/internal/config"
	"circleapp/internal/models"
	"circleapp/internal/repository"
	"circleapp/internal/storage"
)

// SuggestedLimit - размер блока рекомендаций по умолчанию и верхняя
// граница случайного смещения окна
const SuggestedLimit = 5

type UserService interface {
	FindAll(ctx context.Context, page int) (*models.UserPage, error)
	FindByID(ctx context.Context, userID string) (*models.UserProfile, error)
	FindByName(ctx context.Context, name string) ([]models.User, error)
	FindSuggested(ctx context.Context, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, userID string, file UploadFile) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, store storage.Storage, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  store,
		cfg:      cfg,
	}
}

// FindAll - тот же движок пагинации, что и у тредов: page > totalPages = 404
func (s *userService) FindAll(ctx context.Context, page int) (*models.UserPage, error) {
	skip := (page - 1) * PageSize

	users, err := s.userRepo.FindPage(ctx, skip, PageSize)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (totalUsers + PageSize - 1) / PageSize

	if page > totalPages {
		return nil, apperrors.ErrPageNotFound
	}

	if users == nil {
		users = []models.User{}
	}

	return &models.UserPage{
		Users: users,
		Pagination: models.UserPagination{
			TotalUsers:  totalUsers,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    PageSize,
		},
	}, nil
}

// FindByID отдаёт профиль со счётчиками тредов, лайков, ответов и подписок
func (s *userService) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.userRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{User: *user, Stats: *stats}, nil
}

// FindSuggested - до limit пользователей со случайного смещения
func (s *userService) FindSuggested(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = SuggestedLimit
	}

	skip := rand.Intn(SuggestedLimit)

	users, err := s.userRepo.FindSuggested(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

func (s *userService) FindByName(ctx context.Context, name string) ([]models.User, error) {
	users, err := s.userRepo.FindUsersByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	return users, nil
}

// UpdateUser обновляет профиль; смена fullname перегенерирует username
func (s *userService) UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Fullname != "" {
		user.Fullname = req.Fullname
		user.Username = repository.GenerateUsername(req.Fullname)
	}

	if req.Bio != "" {
		user.Bio = req.Bio
	}

	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID string, file UploadFile) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldPicture := user.ProfilePicture

	_, imageURL, err := s.storage.UploadImage(ctx, userID, file.Name, file.Content, file.Size)
	if err != nil {
		return nil, err
	}

	user.ProfilePicture = imageURL

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if oldPicture != "" {
		if objectName := storage.ObjectNameFromURL(oldPicture, s.cfg.MinIO.BucketName); objectName != "" {
			// старый аватар не критичен, ошибку удаления глотаем
			_ = s.storage.DeleteImage(ctx, objectName)
		}
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUserCascade(ctx, userID)
}
