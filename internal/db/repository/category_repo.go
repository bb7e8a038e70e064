package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// CategoryRepository is the Postgres CategoryIndex.
type CategoryRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ question.CategoryIndex = (*CategoryRepository)(nil)

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListCategories returns every category ordered by id.
func (r *CategoryRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	query, args, err := r.builder.Select("id", "type").From("categories").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	cats := make([]question.Category, 0)
	for rows.Next() {
		var c question.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetCategory fetches one category by its stored id.
func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (question.Category, bool, error) {
	query, args, err := r.builder.Select("id", "type").From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return question.Category{}, false, err
	}
	var c question.Category
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return question.Category{}, false, nil
	}
	if err != nil {
		return question.Category{}, false, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, true, nil
}
