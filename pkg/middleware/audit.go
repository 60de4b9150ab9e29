package middleware

import (
	"net/http"
	"time"

	aum "github.com/aum-search/aum-web/pkg"
	"github.com/aum-search/aum-web/pkg/audit"
	"github.com/aum-search/aum-web/pkg/models"
	"github.com/aum-search/aum-web/pkg/search"
)

func Audit(cfg *aum.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			request, err := models.ParseQueryRequest(r)
			if err != nil || !request.Present {
				// Rejected by the handler, nothing to audit.
				h.ServeHTTP(w, r)
				return
			}

			query := &audit.QueryData{
				Query:     request.Query,
				User:      r.Header.Get(forwardedUserHeader),
				RequestID: search.RequestID(ctx),
				Timestamp: now.Unix(),
			}
			_ = cfg.LoggerAudit.Write(query)

			if cfg.SplunkAudit != nil {
				if err := cfg.SplunkAudit.Write(query); err != nil {
					cfg.Logger.Errorf("Unable to send audit to Splunk: %s", err)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
					return
				}
			}
			h.ServeHTTP(w, r)
		})
	}
}
