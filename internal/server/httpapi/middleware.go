package httpapi

import (
	"context"
	"net/http"

	"github.com/avoronin/docvault/internal/common"
	"github.com/avoronin/docvault/internal/server/models"
)

type ctxKey struct{}

// userFromContext returns the user resolved by the auth middleware.
func userFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(ctxKey{}).(*models.User); ok {
		return u
	}
	return nil
}

// withUser resolves the Authorization header to a user record and injects it
// into the request context. Every failure (absent header, invalid or expired
// token, subject matching no user) answers with the same 401 body.
func (s *Server) withUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)

		user, err := s.users.Authenticate(r.Context(), header)
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
