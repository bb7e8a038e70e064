package auth

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

func guarded(tokens *jwt.Manager) http.Handler {
	return RequireAdmin(tokens, zerolog.New(io.Discard))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info().Msg("admin call")
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireAdminDisabledWithoutManager(t *testing.T) {
	rec := httptest.NewRecorder()
	guarded(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1.0/questions/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("secret")})
	admin, err := tokens.Generate("ops", jwt.RoleAdmin)
	require.NoError(t, err)
	viewer, err := tokens.Generate("guest", "viewer")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			req := httptest.NewRequest(http.MethodPost, "/api/v2.0/questions", nil)
			req = req.WithContext(logging.IntoContext(req.Context(), zerolog.New(&logs)))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			guarded(tokens).ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusNoContent {
				assert.Contains(t, logs.String(), `"admin":"ops"`)
			}
		})
	}
}
