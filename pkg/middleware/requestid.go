package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aum-search/aum-web/pkg/search"
)

const maxRequestIDLength = 128

// RequestID keeps the caller's X-Request-Id, or assigns a new one, so that
// the search backend sees the same identifier as the page request.
func RequestID() Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(search.RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}

			w.Header().Set(search.RequestIDHeader, id)
			h.ServeHTTP(w, r.WithContext(search.WithRequestID(r.Context(), id)))
		})
	}
}
