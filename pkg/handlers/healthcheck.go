package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/etherlabsio/healthcheck/v2"

	dbconsole "github.com/app-sre/dbconsole/pkg"
)

const healthcheckTimeout = 5 * time.Second

func Healthcheck(cfg *dbconsole.Config) http.Handler {
	return healthcheck.Handler(
		healthcheck.WithTimeout(healthcheckTimeout),
		healthcheck.WithChecker(
			"backend", healthcheck.CheckerFunc(
				func(ctx context.Context) error {
					if err := cfg.Backend.Ping(ctx); err != nil {
						cfg.Logger.Errorf("Unable to reach the backend: %s", err)
						return errors.New("Unable to reach the backend")
					}
					return nil
				},
			),
		),
	)
}
