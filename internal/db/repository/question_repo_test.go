package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

var questionRowColumns = []string{"id", "question", "answer", "category", "difficulty"}

func newQuestionRepo(t *testing.T) (*QuestionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQuestionRepository(db), mock
}

func TestQuestionRepository_ListAll(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	rows := sqlmock.NewRows(questionRowColumns).
		AddRow(1, "A?", "a", "1", 1).
		AddRow(2, "B?", "b", "2", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, question, answer, category, difficulty FROM questions ORDER BY id")).
		WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []question.Question{
		{ID: 1, Question: "A?", Answer: "a", Category: "1", Difficulty: 1},
		{ID: 2, Question: "B?", Answer: "b", Category: "2", Difficulty: 2},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_ListAllEmpty(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	mock.ExpectQuery("SELECT id, question, answer, category, difficulty FROM questions").
		WillReturnRows(sqlmock.NewRows(questionRowColumns))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuestionRepository_ListByCategory(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	rows := sqlmock.NewRows(questionRowColumns).
		AddRow(1, "A?", "a", "1", 1).
		AddRow(3, "C?", "c", "1", 4)
	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE category = $1 ORDER BY id")).
		WithArgs("1").
		WillReturnRows(rows)

	got, err := repo.ListByCategory(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_SearchEscapesWildcards(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM questions WHERE question ILIKE $1 ORDER BY id")).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(questionRowColumns).AddRow(9, "Is 50%_off a deal?", "no", "5", 1))

	got, err := repo.Search(context.Background(), "50%_off")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(9), got[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_Insert(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO questions (question,answer,category,difficulty) VALUES ($1,$2,$3,$4) RETURNING id")).
		WithArgs("Which four states?", "CO, NM, AZ, UT", "3", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(24))

	got, err := repo.Insert(context.Background(), question.NewQuestion{
		Question:   "Which four states?",
		Answer:     "CO, NM, AZ, UT",
		Category:   "3",
		Difficulty: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(24), got.ID)
	assert.Equal(t, "3", got.Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_InsertError(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	mock.ExpectQuery("INSERT INTO questions").WillReturnError(errors.New("check constraint violated"))

	_, err := repo.Insert(context.Background(), question.NewQuestion{Question: "q", Answer: "a", Category: "1", Difficulty: 9})
	assert.ErrorContains(t, err, "insert question")
}

func TestQuestionRepository_Delete(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM questions WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 5), "missing rows are not an error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionRepository_DeleteError(t *testing.T) {
	repo, mock := newQuestionRepo(t)

	mock.ExpectExec("DELETE FROM questions").WillReturnError(errors.New("connection reset"))

	err := repo.Delete(context.Background(), 5)
	assert.ErrorContains(t, err, "connection reset")
}
