package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"circleapp/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsersByName(ctx context.Context, name string) ([]models.User, error)
	FindPage(ctx context.Context, skip, limit int) ([]models.User, error)
	FindSuggested(ctx context.Context, skip, limit int) ([]models.User, error)
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
	CountUsers(ctx context.Context) (int, error)
	ExistsByID(ctx context.Context, userID string) (bool, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUserCascade(ctx context.Context, userID string) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type ThreadRepository interface {
	CreateThread(ctx context.Context, thread *models.Thread) error
	GetByID(ctx context.Context, threadID string) (*models.Thread, error)
	FindPage(ctx context.Context, skip, limit int) ([]models.Thread, error)
	Count(ctx context.Context) (int, error)
	UpdateThread(ctx context.Context, thread *models.Thread) error
	DeleteThread(ctx context.Context, threadID string) error
}

type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, replyID string) (*models.Reply, error)
	GetByThreadID(ctx context.Context, threadID string) ([]models.Reply, error)
	UpdateReply(ctx context.Context, reply *models.Reply) error
	DeleteReply(ctx context.Context, replyID string) error
}

type LikeRepository interface {
	GetByUserAndThread(ctx context.Context, userID, threadID string) (*models.Like, error)
	GetByThreadID(ctx context.Context, threadID string) ([]models.Like, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, likeID string) error
}

type FollowRepository interface {
	GetByPair(ctx context.Context, followerID, followingID string) (*models.Follow, error)
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followID string) error
}

type Repository struct {
	User   UserRepository
	Thread ThreadRepository
	Reply  ReplyRepository
	Like   LikeRepository
	Follow FollowRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Thread: NewThreadRepository(db),
		Reply:  NewReplyRepository(db),
		Like:   NewLikeRepository(db),
		Follow: NewFollowRepository(db),
	}
}
