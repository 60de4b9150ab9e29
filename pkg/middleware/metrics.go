package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	aum "github.com/aum-search/aum-web/pkg"
)

// Metrics records request count, latency and in-flight requests per route
// template. A panic is counted by its type and passed on.
func Metrics(cfg *aum.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			endpoint := routeTemplate(r)

			done := cfg.Metrics.RequestStarted(ctx, r.Method, endpoint)
			defer done()

			defer func() {
				if v := recover(); v != nil {
					cfg.Metrics.Exception(ctx, r.Method, endpoint, fmt.Sprintf("%T", v))
					panic(v)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}
