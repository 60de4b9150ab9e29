package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	aum "github.com/aum-search/aum-web/pkg"
	"github.com/aum-search/aum-web/pkg/models"
	"github.com/aum-search/aum-web/pkg/search"
	"github.com/aum-search/aum-web/pkg/web"
)

// Search is the form action: it relays the submitted query to the search
// backend and hands the reply back to the page unmodified.
func Search(cfg *aum.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		request, err := models.ParseQueryRequest(r)
		if err != nil {
			cfg.Logger.Debugf("Unable to parse form data: %s", err)
			http.Error(w, "Unable to parse form data", http.StatusBadRequest)
			return
		}
		if !request.Present {
			l := fmt.Sprintf("Request without required form field: %s", models.QueryField)
			http.Error(w, l, http.StatusBadRequest)
			return
		}
		cfg.Metrics.SearchQuery(r.Context())

		response, err := cfg.Client.Search(r.Context(), request.Query)
		if err != nil {
			var (
				transportErr *search.TransportError
				decodeErr    *search.DecodeError
			)
			switch {
			case errors.As(err, &transportErr):
				cfg.Logger.Errorf("Unable to reach search backend: %s", err)
				http.Error(w, "Unable to reach search backend", http.StatusBadGateway)
			case errors.As(err, &decodeErr):
				cfg.Logger.Errorf("Unable to decode search backend response: %s", err)
				http.Error(w, "Unable to decode search backend response", http.StatusBadGateway)
			default:
				cfg.Logger.Errorf("Unable to query search backend: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
			}
			return
		}
		if response.IsError() {
			cfg.Logger.Debugf("Search backend reported an error: %s", response.Failure.Error)
		}

		render(cfg, w, r, &web.PageData{Query: request.Query, Response: response})
	}
}

// Index renders the empty search page.
func Index(cfg *aum.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(cfg, w, r, &web.PageData{})
	}
}

func render(cfg *aum.Config, w http.ResponseWriter, r *http.Request, data *web.PageData) {
	if cfg.Templates == nil || acceptsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		if data.Response == nil {
			_, _ = w.Write([]byte("{}\n"))
			return
		}
		if err := json.NewEncoder(w).Encode(data.Response); err != nil {
			cfg.Logger.Errorf("Unable to encode response: %s", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := cfg.Templates.Render(w, web.IndexTemplate, data); err != nil {
		cfg.Logger.Errorf("Unable to render page: %s", err)
	}
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
