package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circleapp/internal/models"
)

func TestLikeRepository_GetByUserAndThread(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewLikeRepository(sqlxDB)

	ctx := context.Background()
	userID := uuid.New().String()
	threadID := uuid.New().String()

	t.Run("Лайк существует", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"like_id", "user_id", "thread_id"}).
			AddRow(uuid.New().String(), userID, threadID)

		mock.ExpectQuery(`SELECT * FROM likes WHERE user_id = $1 AND thread_id = $2`).
			WithArgs(userID, threadID).
			WillReturnRows(rows)

		like, err := repo.GetByUserAndThread(ctx, userID, threadID)

		require.NoError(t, err)
		require.NotNil(t, like)
		assert.Equal(t, userID, like.UserID)
	})

	t.Run("Лайка нет - без ошибки", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM likes WHERE user_id = $1 AND thread_id = $2`).
			WithArgs(userID, threadID).
			WillReturnRows(sqlmock.NewRows([]string{"like_id", "user_id", "thread_id"}))

		like, err := repo.GetByUserAndThread(ctx, userID, threadID)

		assert.NoError(t, err)
		assert.Nil(t, like)
	})
}

func TestLikeRepository_CreateLike(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewLikeRepository(sqlxDB)

	ctx := context.Background()
	like := &models.Like{
		UserID:   uuid.New().String(),
		ThreadID: uuid.New().String(),
	}

	t.Run("Успешное создание лайка", func(t *testing.T) {
		mock.ExpectExec(`
        INSERT INTO likes (like_id, user_id, thread_id)
        VALUES (?, ?, ?)
    `).
			WithArgs(sqlmock.AnyArg(), like.UserID, like.ThreadID).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateLike(ctx, like)

		assert.NoError(t, err)
		assert.NotEmpty(t, like.LikeID)
	})
}

func TestLikeRepository_DeleteLike(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewLikeRepository(sqlxDB)

	ctx := context.Background()
	likeID := uuid.New().String()

	t.Run("Успешное удаление лайка", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM likes WHERE like_id = $1`).
			WithArgs(likeID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteLike(ctx, likeID)

		assert.NoError(t, err)
	})

	t.Run("Лайк не найден при удалении", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM likes WHERE like_id = $1`).
			WithArgs(likeID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteLike(ctx, likeID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "не найден")
	})
}
