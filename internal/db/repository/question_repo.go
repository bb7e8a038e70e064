package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

var questionColumns = []string{"id", "question", "answer", "category", "difficulty"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionRepository is the Postgres QuestionStore.
type QuestionRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ question.QuestionStore = (*QuestionRepository)(nil)

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *QuestionRepository) selectQuestions() sq.SelectBuilder {
	return r.builder.Select(questionColumns...).From("questions").OrderBy("id")
}

// ListAll returns every question ordered by id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]question.Question, error) {
	return r.list(ctx, r.selectQuestions())
}

// ListByCategory matches the stored category value exactly.
func (r *QuestionRepository) ListByCategory(ctx context.Context, category string) ([]question.Question, error) {
	return r.list(ctx, r.selectQuestions().Where(sq.Eq{"category": category}))
}

// Search performs a case-insensitive substring match on the question text.
// LIKE wildcards in term match literally.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]question.Question, error) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	return r.list(ctx, r.selectQuestions().Where(sq.ILike{"question": pattern}))
}

// Insert stores a question and returns it with the assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, nq question.NewQuestion) (question.Question, error) {
	query, args, err := r.builder.Insert("questions").
		Columns("question", "answer", "category", "difficulty").
		Values(nq.Question, nq.Answer, nq.Category, nq.Difficulty).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return question.Question{}, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return question.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return question.Question{
		ID:         id,
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   nq.Category,
		Difficulty: nq.Difficulty,
	}, nil
}

// Delete removes the question with id. A missing row is not an error.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.builder.Delete("questions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

func (r *QuestionRepository) list(ctx context.Context, b sq.SelectBuilder) ([]question.Question, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	qs := make([]question.Question, 0)
	for rows.Next() {
		var q question.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		qs = append(qs, q)
	}
	return qs, rows.Err()
}
