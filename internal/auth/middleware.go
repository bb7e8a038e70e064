package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// RequireAdmin guards a handler behind an admin bearer token. A nil manager
// disables the guard. The token subject is added to the request logger as "admin".
func RequireAdmin(tokens *jwt.Manager, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if tokens == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Parse "Bearer <token>"
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				httperrors.RespondUnauthorized(w)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				logger.Warn().Err(err).Msg("admin token validation failed")
				httperrors.RespondUnauthorized(w)
				return
			}
			if claims.Role != jwt.RoleAdmin {
				httperrors.RespondForbidden(w)
				return
			}

			reqLogger := logging.FromContext(r.Context()).With().Str("admin", claims.Subject).Logger()
			next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))
		})
	}
}
