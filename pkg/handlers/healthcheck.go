package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	aum "github.com/aum-search/aum-web/pkg"
)

func Healthcheck(cfg *aum.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(5*time.Second),
		healthcheck.WithChecker(
			"backend", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Client.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Unable to connect to the search backend: %s", err)
						return errors.New("Unable to connect to the search backend")
					}
					return nil
				},
			),
		),
	)
}
