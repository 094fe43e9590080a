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

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// GetByPair возвращает (nil, nil), если подписки нет
func (r *followRepository) GetByPair(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	var follow models.Follow

	query := `SELECT * FROM follows WHERE follower_id = $1 AND following_id = $2`

	err := r.db.GetContext(ctx, &follow, query, followerID, followingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении подписки: %w", err)
	}

	return &follow, nil
}

func (r *followRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	follow.FollowID = uuid.New().String()

	query := `
        INSERT INTO follows (follow_id, follower_id, following_id)
        VALUES (:follow_id, :follower_id, :following_id)
    `

	_, err := r.db.NamedExecContext(ctx, query, follow)
	if err != nil {
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

func (r *followRepository) DeleteFollow(ctx context.Context, followID string) error {
	query := `DELETE FROM follows WHERE follow_id = $1`

	result, err := r.db.ExecContext(ctx, query, followID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("подписка не найдена")
	}

	return nil
}
