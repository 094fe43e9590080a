package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"circleapp/internal/apperrors"
	"circleapp/internal/models"
)

type replyRepository struct {
	db *sqlx.DB
}

func NewReplyRepository(db *sqlx.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	reply.ReplyID = uuid.New().String()
	reply.CreatedAt = time.Now()

	if reply.Images == nil {
		reply.Images = []string{}
	}

	query := `
        INSERT INTO replies (reply_id, thread_id, author_id, content, images, created_at)
        VALUES (:reply_id, :thread_id, :author_id, :content, :images, :created_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, reply)
	if err != nil {
		return fmt.Errorf("ошибка при создании ответа: %w", err)
	}

	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, replyID string) (*models.Reply, error) {
	var reply models.Reply

	query := `SELECT * FROM replies WHERE reply_id = $1`

	err := r.db.GetContext(ctx, &reply, query, replyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrReplyNotFound
		}
		return nil, fmt.Errorf("ошибка при получении ответа: %w", err)
	}

	return &reply, nil
}

func (r *replyRepository) GetByThreadID(ctx context.Context, threadID string) ([]models.Reply, error) {
	var replies []models.Reply

	query := `SELECT * FROM replies WHERE thread_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &replies, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ответов: %w", err)
	}

	return replies, nil
}

func (r *replyRepository) UpdateReply(ctx context.Context, reply *models.Reply) error {
	if reply.Images == nil {
		reply.Images = []string{}
	}

	query := `
		UPDATE replies SET
			content = :content,
			images = :images
		WHERE reply_id = :reply_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, reply)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении ответа: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrReplyNotFound
	}

	return nil
}

func (r *replyRepository) DeleteReply(ctx context.Context, replyID string) error {
	query := `DELETE FROM replies WHERE reply_id = $1`

	result, err := r.db.ExecContext(ctx, query, replyID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении ответа: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrReplyNotFound
	}

	return nil
}
