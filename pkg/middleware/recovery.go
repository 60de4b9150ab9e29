package middleware

import (
	"errors"
	"net/http"

	aum "github.com/aum-search/aum-web/pkg"
	"github.com/aum-search/aum-web/pkg/search"
)

func Recovery(cfg *aum.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					err, ok := v.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorf("Recovered from an error: %s (%s %s, request ID: %q)",
						v, r.Method, r.URL.Path, search.RequestID(r.Context()),
					)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
