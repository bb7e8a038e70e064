package question

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Service implements listing, search, quiz selection and question lifecycle
// on top of injected store handles.
type Service struct {
	questions  QuestionStore
	categories CategoryIndex
	picker     Picker
	validate   *validator.Validate
}

type ServiceOptions struct {
	// Picker overrides the random source used for quiz selection.
	Picker Picker
}

func NewService(questions QuestionStore, categories CategoryIndex, opts ServiceOptions) *Service {
	picker := opts.Picker
	if picker == nil {
		picker = DefaultPicker
	}
	return &Service{
		questions:  questions,
		categories: categories,
		picker:     picker,
		validate:   validator.New(),
	}
}

// CategoryLabels returns every category label in id order.
func (s *Service) CategoryLabels(ctx context.Context) ([]string, error) {
	cats, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	labels := make([]string, 0, len(cats))
	for _, c := range cats {
		labels = append(labels, c.Type)
	}
	return labels, nil
}

// ListPage returns one page of questions, the total question count and all category labels.
func (s *Service) ListPage(ctx context.Context, page int) (Page, error) {
	all, err := s.questions.ListAll(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("list questions: %w", err)
	}
	labels, err := s.CategoryLabels(ctx)
	if err != nil {
		return Page{}, err
	}
	window, total := Paginate(all, page)
	return Page{Questions: window, Total: total, Categories: labels}, nil
}

// ResolveCategory looks up the stored category behind a zero-based client id.
func (s *Service) ResolveCategory(ctx context.Context, externalID int) (Category, error) {
	c, ok, err := s.categories.GetCategory(ctx, StorageCategoryID(externalID))
	if err != nil {
		return Category{}, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

// ListByCategory returns every question of the category behind a zero-based client id.
func (s *Service) ListByCategory(ctx context.Context, externalID int) (CategoryListing, error) {
	c, err := s.ResolveCategory(ctx, externalID)
	if err != nil {
		return CategoryListing{}, err
	}
	qs, err := s.questions.ListByCategory(ctx, strconv.FormatInt(c.ID, 10))
	if err != nil {
		return CategoryListing{}, fmt.Errorf("list questions by category: %w", err)
	}
	return CategoryListing{Questions: qs, Total: len(qs), Category: c.Type}, nil
}

// Search returns every question whose text contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string) ([]Question, error) {
	qs, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	if len(qs) == 0 {
		return nil, ErrNoMatch
	}
	return qs, nil
}

// NextQuizQuestion picks a random question of the requested category that the
// caller has not seen yet. When nothing remains the result carries no question
// and reports the candidate pool size.
func (s *Service) NextQuizQuestion(ctx context.Context, q QuizQuery) (QuizResult, error) {
	pool, err := s.candidatePool(ctx, q)
	if err != nil {
		quizSelections.WithLabelValues(outcomeBadRequest).Inc()
		return QuizResult{}, err
	}

	picked, ok := Pick(Exclude(pool, q.Excluded), s.picker)
	if !ok {
		quizSelections.WithLabelValues(outcomeExhausted).Inc()
		return QuizResult{Answered: len(pool)}, nil
	}
	quizSelections.WithLabelValues(outcomeServed).Inc()
	return QuizResult{Question: &picked, Answered: q.BatchSize}, nil
}

func (s *Service) candidatePool(ctx context.Context, q QuizQuery) ([]Question, error) {
	if q.Category == "" {
		return nil, fmt.Errorf("%w: missing quiz category", ErrBadRequest)
	}
	if q.Excluded == nil {
		return nil, fmt.Errorf("%w: missing previous questions", ErrBadRequest)
	}

	if q.Category == CategoryAll {
		pool, err := s.questions.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: list questions: %w", ErrBadRequest, err)
		}
		return pool, nil
	}

	externalID, err := strconv.Atoi(q.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: category %q is not numeric", ErrBadRequest, q.Category)
	}
	// An unknown category is an empty pool, not an error.
	pool, err := s.questions.ListByCategory(ctx, strconv.FormatInt(StorageCategoryID(externalID), 10))
	if err != nil {
		return nil, fmt.Errorf("%w: list questions by category: %w", ErrBadRequest, err)
	}
	return pool, nil
}

// Create validates and stores a new question. Every failure is reported as a
// CreationFailedError.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Question, error) {
	if err := s.validate.Struct(req); err != nil {
		return Question{}, &CreationFailedError{Cause: err}
	}
	categoryID, err := strconv.ParseInt(req.Category.String(), 10, 64)
	if err != nil {
		return Question{}, &CreationFailedError{Cause: fmt.Errorf("category %q: %w", req.Category, err)}
	}
	difficulty, err := strconv.Atoi(req.Difficulty.String())
	if err != nil {
		return Question{}, &CreationFailedError{Cause: fmt.Errorf("difficulty %q: %w", req.Difficulty, err)}
	}
	if err := s.validate.Var(difficulty, "min=1,max=5"); err != nil {
		return Question{}, &CreationFailedError{Cause: err}
	}
	if _, ok, err := s.categories.GetCategory(ctx, categoryID); err != nil {
		return Question{}, &CreationFailedError{Cause: err}
	} else if !ok {
		return Question{}, &CreationFailedError{Cause: fmt.Errorf("%w: %d", ErrUnknownCategory, categoryID)}
	}

	created, err := s.questions.Insert(ctx, NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   strconv.FormatInt(categoryID, 10),
		Difficulty: difficulty,
	})
	if err != nil {
		return Question{}, &CreationFailedError{Cause: err}
	}
	return created, nil
}

// Delete removes a question. Deleting an id that does not exist succeeds and
// echoes the id back.
func (s *Service) Delete(ctx context.Context, id int64) (int64, error) {
	if err := s.questions.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	return id, nil
}
