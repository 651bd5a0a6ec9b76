package httpapi

import (
	"context"
	"net/http"

	"contactbook/internal/server/auth"
	"contactbook/internal/server/users"
	"github.com/google/uuid"
)

type ctxKey string

const (
	principalKey ctxKey = "principal"
	requestIDKey ctxKey = "requestID"
)

// requestID tags every request with an id for log correlation, honoring a
// caller-provided X-Request-Id when present.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		s.logger.Debug(ctx, "request", "request_id", id, "method", r.Method, "path", r.URL.Path)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionBinder resolves the bearer token on the request into a principal.
// Resolution is best-effort enrichment: a missing header, a token that
// fails verification, or a token whose user no longer exists all leave the
// request anonymous. Enforcement happens later, in requireUser, so public
// endpoints stay reachable with a bad token.
func (s *Server) sessionBinder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the raw signed token, no "Bearer " prefix
		token := r.Header.Get("authorization")
		if token != "" {
			username, err := auth.GetUsernameFromToken(token, s.jwtSecret)
			if err == nil {
				user, err := s.users.FindByUsername(r.Context(), username)
				if err == nil {
					ctx := context.WithValue(r.Context(), principalKey, user)
					r = r.WithContext(ctx)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func principalFromContext(ctx context.Context) *users.User {
	user, _ := ctx.Value(principalKey).(*users.User)
	return user
}

// requireUser is the authentication gate every protected handler goes
// through. When the binder attached no principal it writes the 401
// envelope and reports false.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	user := principalFromContext(r.Context())
	if user == nil {
		s.writeFailure(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return user, true
}
