package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

// StoreService implements the Connect StoreService.
type StoreService struct {
	store  storage.Store
	logger *slog.Logger
	plans  planInvalidator
}

var _ apiconnect.StoreServiceHandler = (*StoreService)(nil)

// NewStoreService creates a new StoreService with the given storage backend.
func NewStoreService(store storage.Store, planCache cache.PlanCache, logger *slog.Logger) *StoreService {
	return &StoreService{
		store:  store,
		logger: logger,
		plans:  planInvalidator{cache: planCache, logger: logger},
	}
}

// duplicateName reports a store name collision as a validation problem.
func duplicateName(name string) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("store with name %q already exists", name))
}

// CreateStore adds a store. Every existing purchase item of the user gets an
// out-of-stock price entry for it.
func (s *StoreService) CreateStore(ctx context.Context, req *connect.Request[api.CreateStoreRequest]) (*connect.Response[api.CreateStoreResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("CreateStore request received", "user_id", userID, "name", req.Msg.Name)

	st := &models.Store{
		UserID: userID,
		Name:   req.Msg.Name,
		Color:  strings.ToUpper(req.Msg.Color),
	}
	if err := s.store.CreateStore(ctx, st); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, duplicateName(st.Name)
		}
		return nil, toConnectError(s.logger, "CreateStore", err)
	}
	s.plans.invalidate(ctx, userID)

	s.logger.Info("Store created", "store_id", st.ID, "seq", st.Seq)
	return connect.NewResponse(&api.CreateStoreResponse{Store: toAPIStore(st)}), nil
}

// ListStores returns the user's stores in creation order.
func (s *StoreService) ListStores(ctx context.Context, req *connect.Request[api.ListStoresRequest]) (*connect.Response[api.ListStoresResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	stores, err := s.store.ListStores(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListStores", err)
	}

	out := make([]*api.Store, len(stores))
	for i, st := range stores {
		out[i] = toAPIStore(st)
	}
	return connect.NewResponse(&api.ListStoresResponse{Stores: out}), nil
}

// UpdateStore renames or recolors a store. Its sequence never changes.
func (s *StoreService) UpdateStore(ctx context.Context, req *connect.Request[api.UpdateStoreRequest]) (*connect.Response[api.UpdateStoreResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Name != nil {
		trimmed := strings.TrimSpace(*req.Msg.Name)
		req.Msg.Name = &trimmed
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStore request received", "user_id", userID, "store_id", req.Msg.StoreID)

	st, err := s.store.GetStore(ctx, userID, req.Msg.StoreID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateStore", err)
	}
	if req.Msg.Name != nil {
		st.Name = *req.Msg.Name
	}
	if req.Msg.Color != nil {
		st.Color = strings.ToUpper(*req.Msg.Color)
	}

	if err := s.store.UpdateStore(ctx, st); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, duplicateName(st.Name)
		}
		return nil, toConnectError(s.logger, "UpdateStore", err)
	}
	// Plans carry store names.
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.UpdateStoreResponse{Store: toAPIStore(st)}), nil
}

// DeleteStore removes a store together with its prices and allocations.
func (s *StoreService) DeleteStore(ctx context.Context, req *connect.Request[api.DeleteStoreRequest]) (*connect.Response[api.DeleteStoreResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("DeleteStore request received", "user_id", userID, "store_id", req.Msg.StoreID)

	if err := s.store.DeleteStore(ctx, userID, req.Msg.StoreID); err != nil {
		return nil, toConnectError(s.logger, "DeleteStore", err)
	}
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.DeleteStoreResponse{}), nil
}
