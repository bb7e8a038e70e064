package question

import (
	"context"
	"encoding/json"
)

// PageSize is the fixed number of questions returned per listing page.
const PageSize = 10

// CategoryAll selects every stored question for a quiz round.
const CategoryAll = "all"

// CategoryIDOffset maps the zero-based category ids used by clients onto the
// one-based ids the store assigns. Existing clients depend on this mapping.
const CategoryIDOffset = 1

// Question is a stored trivia question. Field order matches the wire format.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Category   string `json:"category"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
}

// Category is a read-only question category owned by the seed data.
type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the fields the store persists on insert.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   string
	Difficulty int
}

// CreateRequest is the client payload for adding a question. Category is the
// stored category id. Category and Difficulty may arrive as JSON strings or
// numbers; Difficulty must be an integer in [1, 5].
type CreateRequest struct {
	Question   string      `json:"question" validate:"required"`
	Answer     string      `json:"answer" validate:"required"`
	Category   json.Number `json:"category" validate:"required,numeric"`
	Difficulty json.Number `json:"difficulty" validate:"required,numeric"`
}

// QuizQuery asks for the next unseen question of a quiz round.
//
// Category is either CategoryAll or a zero-based category id. A nil Excluded
// slice means the caller never sent the previous question list, which is a
// malformed request; an empty slice is a fresh round.
type QuizQuery struct {
	Category  string
	Excluded  []int64
	BatchSize int
}

// QuizResult is the outcome of a quiz selection. Question is nil once the
// candidate pool is exhausted, and Answered then reports the pool size.
type QuizResult struct {
	Question *Question
	Answered int
}

// Page is one slice of the full question listing.
type Page struct {
	Questions  []Question
	Total      int
	Categories []string
}

// CategoryListing holds every question of one category.
type CategoryListing struct {
	Questions []Question
	Total     int
	Category  string
}

// QuestionStore is the persistence boundary for questions. Listings are
// ordered by id.
type QuestionStore interface {
	ListAll(ctx context.Context) ([]Question, error)
	ListByCategory(ctx context.Context, category string) ([]Question, error)
	Search(ctx context.Context, term string) ([]Question, error)
	Insert(ctx context.Context, q NewQuestion) (Question, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryIndex resolves stored categories. GetCategory reports false when
// no category carries the id.
type CategoryIndex interface {
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, bool, error)
}

// Picker supplies uniform random indexes in [0, n).
type Picker interface {
	IntN(n int) int
}
