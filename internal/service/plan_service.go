package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/calculator"
	"github.com/mmynk/cardplanner/internal/metrics"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

// PlanService computes the cheapest store for every item of a purchase list.
// It backs both the Connect PlanService and the REST optimal-plan endpoint.
type PlanService struct {
	store   storage.Store
	cache   cache.PlanCache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ apiconnect.PlanServiceHandler = (*PlanService)(nil)

func NewPlanService(store storage.Store, planCache cache.PlanCache, m *metrics.Metrics, logger *slog.Logger) *PlanService {
	return &PlanService{
		store:   store,
		cache:   planCache,
		metrics: m,
		logger:  logger,
	}
}

// Compute returns the optimal plan for listID. It fails with
// storage.ErrNotFound when the list does not exist or belongs to another user.
func (s *PlanService) Compute(ctx context.Context, userID, listID string) (*api.OptimalPlan, error) {
	if _, err := s.store.GetPurchaseList(ctx, userID, listID); err != nil {
		return nil, err
	}

	cacheable := true
	cached, generation, err := s.cache.Lookup(ctx, userID, listID)
	if err != nil {
		s.logger.Warn("Plan cache lookup failed", "list_id", listID, "error", err)
		cacheable = false
	}
	if cached != nil {
		s.metrics.PlanCacheHits.Inc()
		return cached, nil
	}
	s.metrics.PlanCacheMisses.Inc()

	plan, err := s.calculate(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Store(ctx, userID, listID, generation, plan); err != nil {
			s.logger.Warn("Plan cache store failed", "list_id", listID, "error", err)
		}
	}
	return plan, nil
}

func (s *PlanService) calculate(ctx context.Context, userID, listID string) (*api.OptimalPlan, error) {
	items, err := s.store.ListPurchaseItems(ctx, listID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	// An empty list needs neither stores nor the calculator.
	if len(items) == 0 {
		return &api.OptimalPlan{
			Items:        []api.PlanItem{},
			StoreSummary: map[string]float64{},
		}, nil
	}

	stores, err := s.store.ListStores(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stores: %w", err)
	}

	calcItems, calcStores := toCalculatorInput(items, stores)
	plan := calculator.CalculateOptimalPlan(calcItems, calcStores)

	s.metrics.PlansComputed.Inc()
	for _, item := range plan.Items {
		s.metrics.PlanItems.WithLabelValues(string(item.Status)).Inc()
	}
	s.logger.Debug("Plan calculated",
		"list_id", listID,
		"items", len(plan.Items),
		"stores", len(plan.StoreSummary),
		"total", plan.TotalPrice,
	)

	return toAPIPlan(plan), nil
}

// GetOptimalPlan returns the cheapest-store assignment for a purchase list.
func (s *PlanService) GetOptimalPlan(ctx context.Context, req *connect.Request[api.GetOptimalPlanRequest]) (*connect.Response[api.OptimalPlan], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("GetOptimalPlan request received", "user_id", userID, "list_id", req.Msg.ListID)

	plan, err := s.Compute(ctx, userID, req.Msg.ListID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetOptimalPlan", err)
	}
	return connect.NewResponse(plan), nil
}
