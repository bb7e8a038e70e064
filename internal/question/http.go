package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes the trivia REST API and the quiz WebSocket.
type HTTPHandler struct {
	svc                     *Service
	logger                  zerolog.Logger
	upgrader                websocket.Upgrader
	defaultQuestionsPerPlay int
}

type HandlerOptions struct {
	// DefaultQuestionsPerPlay is echoed when a quiz request omits questionsPerPlay.
	DefaultQuestionsPerPlay int
	Upgrader                websocket.Upgrader
}

func NewHTTPHandler(svc *Service, logger zerolog.Logger, opts HandlerOptions) *HTTPHandler {
	return &HTTPHandler{
		svc:                     svc,
		logger:                  logger.With().Str("component", "question_http").Logger(),
		upgrader:                opts.Upgrader,
		defaultQuestionsPerPlay: opts.DefaultQuestionsPerPlay,
	}
}

// Register mounts the API routes on mux. Mutating routes are wrapped by admin.
func (h *HTTPHandler) Register(mux *http.ServeMux, admin func(http.Handler) http.Handler) {
	if admin == nil {
		admin = func(next http.Handler) http.Handler { return next }
	}
	mux.HandleFunc("GET /{$}", h.Hello)
	mux.HandleFunc("GET /api/v2.0/categories", h.ListCategoriesWithPageSize)
	mux.HandleFunc("GET /api/v1.1/categories", h.ListCategories)
	mux.HandleFunc("GET /api/v1.0/questions", h.ListQuestions)
	mux.Handle("DELETE /api/v1.0/questions/{id}", admin(http.HandlerFunc(h.DeleteQuestion)))
	mux.Handle("POST /api/v2.0/questions", admin(http.HandlerFunc(h.CreateQuestion)))
	mux.HandleFunc("POST /api/v3.0/questions", h.SearchQuestions)
	mux.HandleFunc("GET /api/v1.0/categories/{cat}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("POST /api/v1.1/quizzes", h.NextQuizQuestion)
	mux.HandleFunc("GET /ws/quizzes", h.HandleQuizSocket)
}

// Hello handles GET /
func (h *HTTPHandler) Hello(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"Backend_Started": true})
}

// ListCategoriesWithPageSize handles GET /api/v2.0/categories
func (h *HTTPHandler) ListCategoriesWithPageSize(w http.ResponseWriter, r *http.Request) {
	labels, err := h.svc.CategoryLabels(r.Context())
	if err != nil {
		h.internalError(w, r, err, "list categories failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories":         labels,
		"QUESTIONS_PER_PAGE": PageSize,
		"success":            true,
	})
}

// ListCategories handles GET /api/v1.1/categories
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	labels, err := h.svc.CategoryLabels(r.Context())
	if err != nil {
		h.internalError(w, r, err, "list categories failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": labels,
		"success":    true,
	})
}

// ListQuestions handles GET /api/v1.0/questions?page=N
// A missing or unparsable page falls back to the first page.
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result, err := h.svc.ListPage(r.Context(), page)
	if err != nil {
		h.internalError(w, r, err, "list questions failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions":          nonNil(result.Questions),
		"categories":         result.Categories,
		"total_questions":    result.Total,
		"QUESTIONS_PER_PAGE": PageSize,
		"success":            true,
	})
}

// ListCategoryQuestions handles GET /api/v1.0/categories/{cat}/questions
func (h *HTTPHandler) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	cat, err := strconv.Atoi(r.PathValue("cat"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	listing, err := h.svc.ListByCategory(r.Context(), cat)
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		httperrors.RespondFailure(w, http.StatusNotFound, httperrors.MsgBadRequest)
		return
	case err != nil:
		h.internalError(w, r, err, "list category questions failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions":        nonNil(listing.Questions),
		"total_questions":  listing.Total,
		"current_category": listing.Category,
		"success":          true,
	})
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

// SearchQuestions handles POST /api/v3.0/questions
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil || req.SearchTerm == nil {
		httperrors.RespondBadRequest(w)
		return
	}

	qs, err := h.svc.Search(r.Context(), *req.SearchTerm)
	switch {
	case errors.Is(err, ErrNoMatch):
		httperrors.RespondNotFound(w)
		return
	case err != nil:
		h.internalError(w, r, err, "search failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions":        qs,
		"total_questions":  len(qs),
		"current_category": "",
		"success":          true,
	})
}

// CreateQuestion handles POST /api/v2.0/questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		creationFailed(w, r, &CreationFailedError{Cause: fmt.Errorf("decode payload: %w", err)})
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		creationFailed(w, r, err)
		return
	}

	labels, err := h.svc.CategoryLabels(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("category labels unavailable after create")
		labels = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": labels,
		"success":    true,
		"created":    created.ID,
	})
}

// DeleteQuestion handles DELETE /api/v1.0/questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Int64("question_id", id).Msg("delete failed")
		httperrors.RespondFailure(w, http.StatusInternalServerError, "")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

// NextQuizQuestion handles POST /api/v1.1/quizzes
func (h *HTTPHandler) NextQuizQuestion(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}

	payload, err := h.playQuiz(r, req)
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("quiz request rejected")
		httperrors.RespondBadRequest(w)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *HTTPHandler) playQuiz(r *http.Request, req quizRequest) (map[string]interface{}, error) {
	query, err := req.toQuery(h.defaultQuestionsPerPlay)
	if err != nil {
		return nil, err
	}
	result, err := h.svc.NextQuizQuestion(r.Context(), query)
	if err != nil {
		return nil, err
	}
	return quizPayload(result, query.BatchSize), nil
}

// quizRequest mirrors the client body:
// {"previous_questions": [1, 2], "quiz_category": {"id": "all"}, "questionsPerPlay": 5}
type quizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
	QuestionsPerPlay  *int          `json:"questionsPerPlay"`
}

type quizCategory struct {
	ID   categoryRef `json:"id"`
	Type string      `json:"type,omitempty"`
}

// categoryRef accepts a category id sent as a JSON string ("all", "3") or number.
type categoryRef string

func (c *categoryRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = categoryRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quiz category id: %w", err)
	}
	*c = categoryRef(n.String())
	return nil
}

func (q quizRequest) toQuery(defaultBatch int) (QuizQuery, error) {
	if q.QuizCategory == nil {
		return QuizQuery{}, fmt.Errorf("%w: missing quiz_category", ErrBadRequest)
	}
	batch := defaultBatch
	if q.QuestionsPerPlay != nil {
		batch = *q.QuestionsPerPlay
	}
	return QuizQuery{
		Category:  strings.TrimSpace(string(q.QuizCategory.ID)),
		Excluded:  q.PreviousQuestions,
		BatchSize: batch,
	}, nil
}

func quizPayload(result QuizResult, batch int) map[string]interface{} {
	payload := map[string]interface{}{
		"total_que_answered": result.Answered,
		"success":            true,
	}
	if result.Question != nil {
		payload["question"] = result.Question
		payload["questionsPerPlay"] = batch
	}
	return payload
}

// creationFailed renders every create failure identically: 422 {"success": false}.
func creationFailed(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Info().Err(err).Msg("question not created")
	httperrors.RespondFailure(w, http.StatusUnprocessableEntity, "")
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.FromContext(r.Context()).Error().Err(err).Msg(msg)
	httperrors.RespondInternalError(w)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func nonNil(qs []Question) []Question {
	if qs == nil {
		return []Question{}
	}
	return qs
}
