// Package httpapi serves the REST surface of cardplanner: the optimal-plan
// endpoint and a liveness probe. Connect services are mounted on the same
// router by the server binary.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mmynk/cardplanner/internal/auth"
	"github.com/mmynk/cardplanner/internal/metrics"
	"github.com/mmynk/cardplanner/internal/middleware"
	"github.com/mmynk/cardplanner/pkg/api"
)

// Planner computes the optimal plan of a user's purchase list.
type Planner interface {
	Compute(ctx context.Context, userID, listID string) (*api.OptimalPlan, error)
}

// errorResponse is the JSON body of failed requests.
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Status: "Error", Error: msg})
}

// NewRouter returns a chi router with the request middleware and REST routes
// installed. API routes are counted in m and throttled by limiter; either may
// be nil.
func NewRouter(logger *slog.Logger, jwtManager *auth.JWTManager, planner Planner, m *metrics.Metrics, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
	)

	r.Get("/healthz", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if m != nil {
				r.Use(middleware.MetricsHTTP(m))
			}
			r.Use(middleware.RequireAuthHTTP(jwtManager))
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Get("/purchases/{listId}/optimal-plan", NewPlanHandler(logger, planner).ServeHTTP)
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
