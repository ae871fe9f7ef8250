package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/cardplanner/internal/cache"
	"github.com/mmynk/cardplanner/internal/calculator"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
	"github.com/mmynk/cardplanner/pkg/api"
	"github.com/mmynk/cardplanner/pkg/api/apiconnect"
)

// PurchaseService implements the Connect PurchaseService: purchase lists
// and the items on them.
type PurchaseService struct {
	store  storage.Store
	logger *slog.Logger
	plans  planInvalidator
}

var _ apiconnect.PurchaseServiceHandler = (*PurchaseService)(nil)

func NewPurchaseService(store storage.Store, planCache cache.PlanCache, logger *slog.Logger) *PurchaseService {
	return &PurchaseService{
		store:  store,
		logger: logger,
		plans:  planInvalidator{cache: planCache, logger: logger},
	}
}

func (s *PurchaseService) CreatePurchaseList(ctx context.Context, req *connect.Request[api.CreatePurchaseListRequest]) (*connect.Response[api.CreatePurchaseListResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	req.Msg.Name = strings.TrimSpace(req.Msg.Name)
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("CreatePurchaseList request received", "user_id", userID)

	list := &models.PurchaseList{
		UserID: userID,
		Name:   req.Msg.Name,
		Status: models.PurchaseStatus(req.Msg.Status),
	}
	if err := s.store.CreatePurchaseList(ctx, list); err != nil {
		return nil, toConnectError(s.logger, "CreatePurchaseList", err)
	}

	s.logger.Info("Purchase list created", "list_id", list.ID)
	return connect.NewResponse(&api.CreatePurchaseListResponse{List: toAPIList(list)}), nil
}

// ListPurchaseLists returns the user's lists, newest first.
func (s *PurchaseService) ListPurchaseLists(ctx context.Context, req *connect.Request[api.ListPurchaseListsRequest]) (*connect.Response[api.ListPurchaseListsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	lists, err := s.store.ListPurchaseLists(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListPurchaseLists", err)
	}

	out := make([]*api.PurchaseList, len(lists))
	for i, l := range lists {
		out[i] = toAPIList(l)
	}
	return connect.NewResponse(&api.ListPurchaseListsResponse{Lists: out}), nil
}

// GetPurchaseList returns a list with its items.
func (s *PurchaseService) GetPurchaseList(ctx context.Context, req *connect.Request[api.GetPurchaseListRequest]) (*connect.Response[api.GetPurchaseListResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	list, err := s.store.GetPurchaseList(ctx, userID, req.Msg.ListID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetPurchaseList", err)
	}
	items, err := s.store.ListPurchaseItems(ctx, list.ID, false)
	if err != nil {
		return nil, toConnectError(s.logger, "GetPurchaseList", err)
	}

	return connect.NewResponse(&api.GetPurchaseListResponse{
		List:  toAPIList(list),
		Items: toAPIItems(items),
	}), nil
}

func (s *PurchaseService) UpdatePurchaseList(ctx context.Context, req *connect.Request[api.UpdatePurchaseListRequest]) (*connect.Response[api.UpdatePurchaseListResponse], error) {
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

	s.logger.Info("UpdatePurchaseList request received", "user_id", userID, "list_id", req.Msg.ListID)

	list, err := s.store.GetPurchaseList(ctx, userID, req.Msg.ListID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdatePurchaseList", err)
	}
	if req.Msg.Name != nil {
		list.Name = *req.Msg.Name
	}
	if req.Msg.Status != nil {
		list.Status = models.PurchaseStatus(*req.Msg.Status)
	}
	if err := s.store.UpdatePurchaseList(ctx, list); err != nil {
		return nil, toConnectError(s.logger, "UpdatePurchaseList", err)
	}

	return connect.NewResponse(&api.UpdatePurchaseListResponse{List: toAPIList(list)}), nil
}

func (s *PurchaseService) DeletePurchaseList(ctx context.Context, req *connect.Request[api.DeletePurchaseListRequest]) (*connect.Response[api.DeletePurchaseListResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("DeletePurchaseList request received", "user_id", userID, "list_id", req.Msg.ListID)

	if err := s.store.DeletePurchaseList(ctx, userID, req.Msg.ListID); err != nil {
		return nil, toConnectError(s.logger, "DeletePurchaseList", err)
	}
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.DeletePurchaseListResponse{}), nil
}

// AddItem puts a card on a list. The item starts out of stock at every store
// until prices are set.
func (s *PurchaseService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("AddItem request received",
		"user_id", userID,
		"list_id", req.Msg.ListID,
		"quantity", req.Msg.Quantity,
	)

	if _, err := s.store.GetPurchaseList(ctx, userID, req.Msg.ListID); err != nil {
		return nil, toConnectError(s.logger, "AddItem", err)
	}

	item := &models.PurchaseItem{
		ListID:          req.Msg.ListID,
		CardID:          req.Msg.CardID,
		CustomCardID:    req.Msg.CustomCardID,
		Quantity:        req.Msg.Quantity,
		SelectedStoreID: req.Msg.SelectedStoreID,
	}

	if item.CardID != "" {
		card, err := s.store.GetCard(ctx, item.CardID)
		if err != nil {
			return nil, toConnectError(s.logger, "AddItem", err)
		}
		item.CardName = card.Name
	} else {
		card, err := s.store.GetCustomCard(ctx, userID, item.CustomCardID)
		if err != nil {
			return nil, toConnectError(s.logger, "AddItem", err)
		}
		item.CardName = card.Name
	}

	if item.SelectedStoreID != "" {
		if _, err := s.store.GetStore(ctx, userID, item.SelectedStoreID); err != nil {
			return nil, toConnectError(s.logger, "AddItem", err)
		}
	}

	if err := s.store.CreatePurchaseItem(ctx, userID, item); err != nil {
		return nil, toConnectError(s.logger, "AddItem", err)
	}
	s.plans.invalidate(ctx, userID)

	s.logger.Info("Item added", "item_id", item.ID, "card", item.CardName)
	return connect.NewResponse(&api.AddItemResponse{Item: toAPIItem(item)}), nil
}

// ListItems returns a list's items in the order they were added.
func (s *PurchaseService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPurchaseList(ctx, userID, req.Msg.ListID); err != nil {
		return nil, toConnectError(s.logger, "ListItems", err)
	}
	items, err := s.store.ListPurchaseItems(ctx, req.Msg.ListID, false)
	if err != nil {
		return nil, toConnectError(s.logger, "ListItems", err)
	}

	return connect.NewResponse(&api.ListItemsResponse{Items: toAPIItems(items)}), nil
}

// itemOnList loads an item and checks it belongs to the given list of the user.
func (s *PurchaseService) itemOnList(ctx context.Context, userID, listID, itemID string) (*models.PurchaseItem, error) {
	item, err := s.store.GetPurchaseItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if item.ListID != listID {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}
	return item, nil
}

// UpdateItem changes an item's quantity or manual store choice. The
// quantity cannot drop below what is already allocated to stores.
func (s *PurchaseService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateItem request received", "user_id", userID, "item_id", req.Msg.ItemID)

	item, err := s.itemOnList(ctx, userID, req.Msg.ListID, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateItem", err)
	}

	var check storage.AllocationCheck
	if req.Msg.Quantity != nil {
		item.Quantity = *req.Msg.Quantity
		check = func(_ int, allocations []*models.Allocation) error {
			return calculator.CheckAllocation(item.Quantity, quantities(allocations), 0)
		}
	}

	if req.Msg.SelectedStoreID != nil {
		if *req.Msg.SelectedStoreID != "" {
			if _, err := s.store.GetStore(ctx, userID, *req.Msg.SelectedStoreID); err != nil {
				return nil, toConnectError(s.logger, "UpdateItem", err)
			}
		}
		item.SelectedStoreID = *req.Msg.SelectedStoreID
	}

	if err := s.store.UpdatePurchaseItem(ctx, item, check); err != nil {
		if errors.Is(err, calculator.ErrOverAllocated) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, toConnectError(s.logger, "UpdateItem", err)
	}
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.UpdateItemResponse{Item: toAPIItem(item)}), nil
}

func (s *PurchaseService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	s.logger.Info("DeleteItem request received", "user_id", userID, "item_id", req.Msg.ItemID)

	if _, err := s.itemOnList(ctx, userID, req.Msg.ListID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(s.logger, "DeleteItem", err)
	}
	if err := s.store.DeletePurchaseItem(ctx, req.Msg.ListID, req.Msg.ItemID); err != nil {
		return nil, toConnectError(s.logger, "DeleteItem", err)
	}
	s.plans.invalidate(ctx, userID)

	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}
