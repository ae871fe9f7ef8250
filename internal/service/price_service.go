package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

// PriceService implements the Connect PriceService.
type PriceService struct {
	store  storage.Store
	logger *slog.Logger
	plans  planInvalidator
}

var _ apiconnect.PriceServiceHandler = (*PriceService)(nil)

func NewPriceService(store storage.Store, planCache cache.PlanCache, logger *slog.Logger) *PriceService {
	return &PriceService{
		store:  store,
		logger: logger,
		plans:  planInvalidator{cache: planCache, logger: logger},
	}
}

// ListPrices returns an item's price at every store, in store creation order.
func (s *PriceService) ListPrices(ctx context.Context, req *connect.Request[api.ListPricesRequest]) (*connect.Response[api.ListPricesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPurchaseItem(ctx, userID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(s.logger, "ListPrices", err)
	}
	entries, err := s.store.ListPrices(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListPrices", err)
	}

	out := make([]*api.Price, len(entries))
	for i, e := range entries {
		out[i] = toAPIPrice(e)
	}
	return connect.NewResponse(&api.ListPricesResponse{Prices: out}), nil
}

// SetPrice records what a store charges for an item. A null price marks
// the item out of stock at that store.
func (s *PriceService) SetPrice(ctx context.Context, req *connect.Request[api.SetPriceRequest]) (*connect.Response[api.SetPriceResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("SetPrice request received",
		"user_id", userID,
		"item_id", req.Msg.ItemID,
		"store_id", req.Msg.StoreID,
		"out_of_stock", req.Msg.Price == nil,
	)

	if _, err := s.store.GetPurchaseItem(ctx, userID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(s.logger, "SetPrice", err)
	}
	if _, err := s.store.GetStore(ctx, userID, req.Msg.StoreID); err != nil {
		return nil, toConnectError(s.logger, "SetPrice", err)
	}

	entry := &models.PriceEntry{
		ItemID:  req.Msg.ItemID,
		StoreID: req.Msg.StoreID,
		Price:   req.Msg.Price,
	}
	if err := s.store.UpsertPrice(ctx, entry); err != nil {
		return nil, toConnectError(s.logger, "SetPrice", err)
	}
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.SetPriceResponse{Price: toAPIPrice(entry)}), nil
}

// DeletePrice removes a price entry. The plan treats a missing entry the
// same as an out-of-stock one.
func (s *PriceService) DeletePrice(ctx context.Context, req *connect.Request[api.DeletePriceRequest]) (*connect.Response[api.DeletePriceResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPurchaseItem(ctx, userID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(s.logger, "DeletePrice", err)
	}
	if err := s.store.DeletePrice(ctx, req.Msg.ItemID, req.Msg.StoreID); err != nil {
		return nil, toConnectError(s.logger, "DeletePrice", err)
	}
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.DeletePriceResponse{}), nil
}
