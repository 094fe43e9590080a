package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"circleapp/internal/apperrors"
	"circleapp/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

type CreateUserRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Bio      string `json:"bio"`
	Password string `json:"password"`
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// GenerateUsername собирает username вида user_<8hex>_<fullname>
func GenerateUsername(fullname string) string {
	id := uuid.New().String()
	usernameUUIDPart := strings.ReplaceAll(id[:8], "-", "")
	return fmt.Sprintf("user_%s_%s", usernameUUIDPart, strings.ReplaceAll(fullname, " ", "_"))
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	user.CreatedAt = time.Now()

	query := `
		INSERT INTO users (user_id, username, fullname, email, password_hash, bio, profile_picture, refresh_token, refresh_token_expiry_time, created_at)
		VALUES (:user_id, :username, :fullname, :email, :password_hash, :bio, :profile_picture, :refresh_token, :refresh_token_expiry_time, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) FindUsersByName(ctx context.Context, name string) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users WHERE fullname = $1`

	err := r.db.SelectContext(ctx, &users, query, name)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователей: %w", err)
	}

	return users, nil
}

func (r *userRepository) FindPage(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User

	query := `SELECT * FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	err := r.db.SelectContext(ctx, &users, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка пользователей: %w", err)
	}

	return users, nil
}

// FindSuggested - короткий список пользователей для блока рекомендаций,
// окно сдвигается на случайный offset на стороне сервиса
func (r *userRepository) FindSuggested(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User

	query := `SELECT user_id, username, fullname, profile_picture FROM users OFFSET $1 LIMIT $2`

	err := r.db.SelectContext(ctx, &users, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении рекомендованных пользователей: %w", err)
	}

	return users, nil
}

// GetUserStats собирает счётчики связей пользователя одним запросом
func (r *userRepository) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	var stats models.UserStats

	query := `
		SELECT
			(SELECT COUNT(*) FROM threads WHERE author_id = $1) AS threads,
			(SELECT COUNT(*) FROM likes WHERE user_id = $1) AS likes,
			(SELECT COUNT(*) FROM replies WHERE author_id = $1) AS replies,
			(SELECT COUNT(*) FROM follows WHERE following_id = $1) AS followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following
	`

	err := r.db.GetContext(ctx, &stats, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при подсчёте связей пользователя: %w", err)
	}

	return &stats, nil
}

func (r *userRepository) CountUsers(ctx context.Context) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM users`

	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте пользователей: %w", err)
	}

	return count, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, userID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`

	err := r.db.GetContext(ctx, &exists, query, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке пользователя: %w", err)
	}

	return exists, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	return user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET username = :username, fullname = :fullname, bio = :bio, password_hash = :password_hash, profile_picture = :profile_picture
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUserCascade удаляет пользователя и все его следы одной транзакцией:
// сначала подписки в обе стороны, затем лайки, ответы и треды, последним сама запись.
// Либо всё, либо ничего - без висячих внешних ключей при сбое на середине.
func (r *userRepository) DeleteUserCascade(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 OR following_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении подписок: %w", err)
	}

	// лайки и ответы чужих пользователей на тредах удаляемого
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM likes WHERE thread_id IN (SELECT thread_id FROM threads WHERE author_id = $1)`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении лайков тредов: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM replies WHERE thread_id IN (SELECT thread_id FROM threads WHERE author_id = $1)`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении ответов на треды: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении лайков: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM replies WHERE author_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении ответов: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM threads WHERE author_id = $1`, userID); err != nil {
		return fmt.Errorf("ошибка при удалении тредов: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении refresh token: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE refresh_token = $1 AND refresh_token_expiry_time > NOW()`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("недействительный refresh token")
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по refresh token: %w", err)
	}

	return &user, nil
}
