package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"circleapp/internal/models"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// GetByUserAndThread возвращает (nil, nil), если лайка нет
func (r *likeRepository) GetByUserAndThread(ctx context.Context, userID, threadID string) (*models.Like, error) {
	var like models.Like

	query := `SELECT * FROM likes WHERE user_id = $1 AND thread_id = $2`

	err := r.db.GetContext(ctx, &like, query, userID, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении лайка: %w", err)
	}

	return &like, nil
}

func (r *likeRepository) GetByThreadID(ctx context.Context, threadID string) ([]models.Like, error) {
	var likes []models.Like

	query := `SELECT * FROM likes WHERE thread_id = $1`

	err := r.db.SelectContext(ctx, &likes, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении лайков: %w", err)
	}

	return likes, nil
}

func (r *likeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.LikeID = uuid.New().String()

	query := `
        INSERT INTO likes (like_id, user_id, thread_id)
        VALUES (:like_id, :user_id, :thread_id)
    `

	_, err := r.db.NamedExecContext(ctx, query, like)
	if err != nil {
		return fmt.Errorf("ошибка при создании лайка: %w", err)
	}

	return nil
}

func (r *likeRepository) DeleteLike(ctx context.Context, likeID string) error {
	query := `DELETE FROM likes WHERE like_id = $1`

	result, err := r.db.ExecContext(ctx, query, likeID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении лайка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("лайк не найден")
	}

	return nil
}
