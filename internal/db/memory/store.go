// Package memory provides an in-process question and category store for
// local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// SeedCategories mirrors the categories inserted by the initial migration.
var SeedCategories = []question.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// Store keeps questions and categories in maps guarded by a RWMutex.
type Store struct {
	mu         sync.RWMutex
	questions  map[int64]question.Question
	categories map[int64]question.Category
	nextID     int64
}

var (
	_ question.QuestionStore = (*Store)(nil)
	_ question.CategoryIndex = (*Store)(nil)
)

// NewStore creates a store holding the given categories.
func NewStore(categories []question.Category) *Store {
	s := &Store{
		questions:  make(map[int64]question.Question),
		categories: make(map[int64]question.Category, len(categories)),
		nextID:     1,
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

// Put stores q under its own id, replacing any existing question.
func (s *Store) Put(q question.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
	if q.ID >= s.nextID {
		s.nextID = q.ID + 1
	}
}

func (s *Store) ListAll(_ context.Context) ([]question.Question, error) {
	return s.filter(func(question.Question) bool { return true }), nil
}

func (s *Store) ListByCategory(_ context.Context, category string) ([]question.Question, error) {
	return s.filter(func(q question.Question) bool { return q.Category == category }), nil
}

func (s *Store) Search(_ context.Context, term string) ([]question.Question, error) {
	needle := strings.ToLower(term)
	return s.filter(func(q question.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *Store) Insert(_ context.Context, nq question.NewQuestion) (question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := question.Question{
		ID:         s.nextID,
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   nq.Category,
		Difficulty: nq.Difficulty,
	}
	s.questions[q.ID] = q
	s.nextID++
	return q, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.questions, id)
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]question.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cats := make([]question.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (question.Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	return c, ok, nil
}

func (s *Store) filter(keep func(question.Question) bool) []question.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
