package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

func newCategoryRepo(t *testing.T) (*CategoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCategoryRepository(db), mock
}

func TestCategoryRepository_ListCategories(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, type FROM categories ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).
			AddRow(1, "Science").
			AddRow(2, "Art"))

	got, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []question.Category{{ID: 1, Type: "Science"}, {ID: 2, Type: "Art"}}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetCategory(t *testing.T) {
	repo, mock := newCategoryRepo(t)

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, type FROM categories WHERE id = $1")).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "type"}).AddRow(4, "History"))

		c, ok, err := repo.GetCategory(context.Background(), 4)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "History", c.Type)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, type FROM categories WHERE id = $1")).
			WithArgs(int64(101)).
			WillReturnError(sql.ErrNoRows)

		_, ok, err := repo.GetCategory(context.Background(), 101)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
