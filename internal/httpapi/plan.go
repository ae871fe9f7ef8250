package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mmynk/cardplanner/internal/middleware"
	"github.com/mmynk/cardplanner/internal/storage"
)

// PlanHandler serves GET /api/v1/purchases/{listId}/optimal-plan.
type PlanHandler struct {
	log     *slog.Logger
	planner Planner
}

func NewPlanHandler(log *slog.Logger, planner Planner) *PlanHandler {
	return &PlanHandler{log: log, planner: planner}
}

// ServeHTTP writes the plan object itself as the body, with no envelope.
// Unknown lists and lists of other users are both 404.
func (h *PlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "httpapi.plan"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)

	userID := middleware.GetUserID(r.Context())
	listID := chi.URLParam(r, "listId")

	plan, err := h.planner.Compute(r.Context(), userID, listID)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("purchase list not found", slog.String("list_id", listID))
		renderError(w, r, http.StatusNotFound, "purchase list not found")
		return
	}
	if err != nil {
		log.Error("failed to calculate optimal plan", slog.String("list_id", listID), slog.Any("error", err))
		renderError(w, r, http.StatusInternalServerError, "could not calculate optimal plan")
		return
	}

	log.Debug("optimal plan served", slog.String("list_id", listID), slog.Int("items", len(plan.Items)))
	render.JSON(w, r, plan)
}
