package controllers

import (
	"context"
	"net/http"

	"github.com/knightmeat/taste-backend/api/responses"
	"github.com/knightmeat/taste-backend/pkg/config"
	pkgerrors "github.com/knightmeat/taste-backend/pkg/errors"
	"github.com/knightmeat/taste-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Taste-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores before declaring readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Taste-Env", cfg.App.Env)

		checks := map[string]string{
			"database": "skipped",
			"redis":    "skipped",
		}

		deps := []struct {
			name string
			dep  pinger
		}{
			{"database", dbP},
			{"redis", redisP},
		}

		for _, d := range deps {
			if d.dep == nil {
				continue
			}
			if err := d.dep.Ping(r.Context()); err != nil {
				checks[d.name] = "down"
				wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, d.name+" unavailable")
				responses.WriteError(r.Context(), logg, w, wrapped)
				return
			}
			checks[d.name] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
