package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/calculator"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

var errDuplicateAllocation = errors.New("allocation for this store already exists")

// AllocationService implements the Connect AllocationService. Allocations
// split an item's quantity across stores by hand and do not affect the
// optimal plan.
type AllocationService struct {
	store  storage.Store
	logger *slog.Logger
}

var _ apiconnect.AllocationServiceHandler = (*AllocationService)(nil)

func NewAllocationService(store storage.Store, logger *slog.Logger) *AllocationService {
	return &AllocationService{store: store, logger: logger}
}

// quantities returns the allocated quantity of each allocation.
func quantities(allocations []*models.Allocation) []int {
	out := make([]int, len(allocations))
	for i, a := range allocations {
		out[i] = a.Quantity
	}
	return out
}

// ownedAllocation loads an allocation whose item belongs to userID.
func (s *AllocationService) ownedAllocation(ctx context.Context, userID, allocationID string) (*models.Allocation, *models.PurchaseItem, error) {
	a, err := s.store.GetAllocation(ctx, allocationID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.store.GetPurchaseItem(ctx, userID, a.ItemID)
	if err != nil {
		return nil, nil, err
	}
	return a, item, nil
}

// allocationError maps rejected allocation writes to InvalidArgument.
func (s *AllocationService) allocationError(method string, err error) error {
	switch {
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeInvalidArgument, errDuplicateAllocation)
	case errors.Is(err, calculator.ErrOverAllocated):
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return toConnectError(s.logger, method, err)
}

func (s *AllocationService) ListAllocations(ctx context.Context, req *connect.Request[api.ListAllocationsRequest]) (*connect.Response[api.ListAllocationsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPurchaseItem(ctx, userID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(s.logger, "ListAllocations", err)
	}
	allocations, err := s.store.ListAllocations(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListAllocations", err)
	}

	out := make([]*api.Allocation, len(allocations))
	for i, a := range allocations {
		out[i] = toAPIAllocation(a)
	}
	return connect.NewResponse(&api.ListAllocationsResponse{Allocations: out}), nil
}

// CreateAllocation assigns part of an item's quantity to a store. Each store
// can hold one allocation per item, and the total cannot exceed the item quantity.
func (s *AllocationService) CreateAllocation(ctx context.Context, req *connect.Request[api.CreateAllocationRequest]) (*connect.Response[api.CreateAllocationResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("CreateAllocation request received",
		"user_id", userID,
		"item_id", req.Msg.ItemID,
		"store_id", req.Msg.StoreID,
		"quantity", req.Msg.Quantity,
	)

	item, err := s.store.GetPurchaseItem(ctx, userID, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateAllocation", err)
	}
	if _, err := s.store.GetStore(ctx, userID, req.Msg.StoreID); err != nil {
		return nil, toConnectError(s.logger, "CreateAllocation", err)
	}

	allocation := &models.Allocation{
		ItemID:   item.ID,
		StoreID:  req.Msg.StoreID,
		Quantity: req.Msg.Quantity,
	}
	check := func(itemQuantity int, others []*models.Allocation) error {
		for _, a := range others {
			if a.StoreID == allocation.StoreID {
				return fmt.Errorf("store %s: %w", a.StoreID, storage.ErrConflict)
			}
		}
		return calculator.CheckAllocation(itemQuantity, quantities(others), allocation.Quantity)
	}
	if err := s.store.CreateAllocation(ctx, allocation, check); err != nil {
		return nil, s.allocationError("CreateAllocation", err)
	}

	// Re-read for the joined store name and color.
	created, err := s.store.GetAllocation(ctx, allocation.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateAllocation", err)
	}
	return connect.NewResponse(&api.CreateAllocationResponse{Allocation: toAPIAllocation(created)}), nil
}

func (s *AllocationService) UpdateAllocation(ctx context.Context, req *connect.Request[api.UpdateAllocationRequest]) (*connect.Response[api.UpdateAllocationResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	a, _, err := s.ownedAllocation(ctx, userID, req.Msg.AllocationID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateAllocation", err)
	}

	a.Quantity = req.Msg.Quantity
	check := func(itemQuantity int, others []*models.Allocation) error {
		return calculator.CheckAllocation(itemQuantity, quantities(others), a.Quantity)
	}
	if err := s.store.UpdateAllocation(ctx, a, check); err != nil {
		return nil, s.allocationError("UpdateAllocation", err)
	}

	return connect.NewResponse(&api.UpdateAllocationResponse{Allocation: toAPIAllocation(a)}), nil
}

func (s *AllocationService) DeleteAllocation(ctx context.Context, req *connect.Request[api.DeleteAllocationRequest]) (*connect.Response[api.DeleteAllocationResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, _, err := s.ownedAllocation(ctx, userID, req.Msg.AllocationID); err != nil {
		return nil, toConnectError(s.logger, "DeleteAllocation", err)
	}
	if err := s.store.DeleteAllocation(ctx, req.Msg.AllocationID); err != nil {
		return nil, toConnectError(s.logger, "DeleteAllocation", err)
	}

	return connect.NewResponse(&api.DeleteAllocationResponse{}), nil
}
