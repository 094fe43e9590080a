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

type ThreadRepositoryImpl struct {
	db *sqlx.DB
}

type CreateThreadRequest struct {
	AuthorID string   `json:"author_id"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
}

type UpdateThreadRequest struct {
	ThreadID string   `json:"thread_id"`
	AuthorID string   `json:"author_id"`
	Content  string   `json:"content"`
	Images   []string `json:"images"`
}

func NewThreadRepository(db *sqlx.DB) *ThreadRepositoryImpl {
	return &ThreadRepositoryImpl{db: db}
}

func (r *ThreadRepositoryImpl) CreateThread(ctx context.Context, thread *models.Thread) error {
	if thread.ThreadID == "" {
		thread.ThreadID = uuid.New().String()
	}
	thread.CreatedAt = time.Now()

	if thread.Images == nil {
		thread.Images = []string{}
	}

	query := `
        INSERT INTO threads (thread_id, content, images, author_id, created_at)
        VALUES (:thread_id, :content, :images, :author_id, :created_at)
    `

	_, err := r.db.NamedExecContext(ctx, query, thread)
	if err != nil {
		return fmt.Errorf("ошибка при создании треда: %w", err)
	}

	return nil
}

func (r *ThreadRepositoryImpl) GetByID(ctx context.Context, threadID string) (*models.Thread, error) {
	query := `SELECT * FROM threads WHERE thread_id = $1`

	var thread models.Thread
	err := r.db.GetContext(ctx, &thread, query, threadID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrThreadNotFound
		}
		return nil, fmt.Errorf("ошибка при получении треда: %w", err)
	}

	if err := r.attachRelations(ctx, &thread); err != nil {
		return nil, err
	}

	return &thread, nil
}

// FindPage возвращает окно [skip, skip+limit) по убыванию даты создания
func (r *ThreadRepositoryImpl) FindPage(ctx context.Context, skip, limit int) ([]models.Thread, error) {
	query := `SELECT * FROM threads ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	var threads []models.Thread
	err := r.db.SelectContext(ctx, &threads, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении тредов: %w", err)
	}

	for i := range threads {
		if err := r.attachRelations(ctx, &threads[i]); err != nil {
			return nil, err
		}
	}

	return threads, nil
}

func (r *ThreadRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM threads`

	err := r.db.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте тредов: %w", err)
	}

	return count, nil
}

// UpdateThread перезаписывает контент и картинки и обновляет created_at:
// отредактированный тред поднимается наверх выдачи
func (r *ThreadRepositoryImpl) UpdateThread(ctx context.Context, thread *models.Thread) error {
	thread.CreatedAt = time.Now()

	if thread.Images == nil {
		thread.Images = []string{}
	}

	query := `
		UPDATE threads SET
			content = :content,
			images = :images,
			created_at = :created_at
		WHERE thread_id = :thread_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, thread)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении треда: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrThreadNotFound
	}

	return nil
}

func (r *ThreadRepositoryImpl) DeleteThread(ctx context.Context, threadID string) error {
	query := `DELETE FROM threads WHERE thread_id = $1`

	result, err := r.db.ExecContext(ctx, query, threadID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении треда: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrThreadNotFound
	}

	return nil
}

func (r *ThreadRepositoryImpl) attachRelations(ctx context.Context, thread *models.Thread) error {
	var author models.User
	err := r.db.GetContext(ctx, &author,
		`SELECT * FROM users WHERE user_id = $1`, thread.AuthorID)
	if err != nil {
		return fmt.Errorf("ошибка при получении автора треда: %w", err)
	}
	thread.Author = &author

	likes := []models.Like{}
	err = r.db.SelectContext(ctx, &likes,
		`SELECT * FROM likes WHERE thread_id = $1`, thread.ThreadID)
	if err != nil {
		return fmt.Errorf("ошибка при получении лайков треда: %w", err)
	}
	thread.Likes = likes

	replies := []models.Reply{}
	err = r.db.SelectContext(ctx, &replies,
		`SELECT * FROM replies WHERE thread_id = $1 ORDER BY created_at`, thread.ThreadID)
	if err != nil {
		return fmt.Errorf("ошибка при получении ответов треда: %w", err)
	}
	thread.Replies = replies

	return nil
}
