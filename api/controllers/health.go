package controllers

import (
	"net/http"

	"github.com/pratoquente/pratoquente-backend/api/responses"
	"github.com/pratoquente/pratoquente-backend/pkg/config"
	"github.com/pratoquente/pratoquente-backend/pkg/db"
	pkgerrors "github.com/pratoquente/pratoquente-backend/pkg/errors"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PratoQuente-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness only when the datasource and cache
// respond to pings. Nil pingers are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger db.Pinger, redisPinger redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("X-PratoQuente-Env", cfg.App.Env)

		checks := map[string]string{}

		if dbPinger != nil {
			if err := dbPinger.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
				return
			}
			checks["database"] = "ok"
		}

		if redisPinger != nil {
			if err := redisPinger.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cache not ready"))
				return
			}
			checks["cache"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
