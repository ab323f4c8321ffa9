package middleware

import (
	"net/http"
	"strings"

	"github.com/brightpaw/vetcare-platform/internal/session"
)

// ProviderSession resolves the acting provider from request headers and puts
// it on the context. Requests without the headers pass through anonymously;
// handlers that need a session reject them individually.
func ProviderSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get("X-Provider-ID"))
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			provider := session.CurrentProvider{
				ID:   id,
				Name: strings.TrimSpace(r.Header.Get("X-Provider-Name")),
			}
			next.ServeHTTP(w, r.WithContext(session.WithProvider(r.Context(), provider)))
		})
	}
}

// RequireProvider rejects requests that carry no provider session. Mounted on
// the management sub-router.
func RequireProvider() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := session.ProviderFromContext(r.Context()); !ok {
				http.Error(w, `{"error": "provider session required"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
