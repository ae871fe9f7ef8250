package api

// PurchaseList groups the cards a user plans to buy.
type PurchaseList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// PurchaseItem is a card with a required quantity on a purchase list.
type PurchaseItem struct {
	ID              string `json:"id"`
	ListID          string `json:"listId"`
	CardID          string `json:"cardId,omitempty"`
	CustomCardID    string `json:"customCardId,omitempty"`
	CardName        string `json:"cardName"`
	Quantity        int    `json:"quantity"`
	SelectedStoreID string `json:"selectedStoreId,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
}

type CreatePurchaseListRequest struct {
	Name   string `json:"name" validate:"max=100"`
	Status string `json:"status" validate:"omitempty,oneof=planning purchased"`
}

type CreatePurchaseListResponse struct {
	List *PurchaseList `json:"list"`
}

type ListPurchaseListsRequest struct{}

type ListPurchaseListsResponse struct {
	Lists []*PurchaseList `json:"lists"`
}

type GetPurchaseListRequest struct {
	ListID string `json:"listId" validate:"required"`
}

type GetPurchaseListResponse struct {
	List  *PurchaseList   `json:"list"`
	Items []*PurchaseItem `json:"items"`
}

type UpdatePurchaseListRequest struct {
	ListID string  `json:"listId" validate:"required"`
	Name   *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=planning purchased"`
}

type UpdatePurchaseListResponse struct {
	List *PurchaseList `json:"list"`
}

type DeletePurchaseListRequest struct {
	ListID string `json:"listId" validate:"required"`
}

type DeletePurchaseListResponse struct{}

// AddItemRequest references exactly one of a catalog card or a custom card.
type AddItemRequest struct {
	ListID          string `json:"listId" validate:"required"`
	CardID          string `json:"cardId,omitempty" validate:"required_without=CustomCardID,excluded_with=CustomCardID"`
	CustomCardID    string `json:"customCardId,omitempty" validate:"required_without=CardID"`
	Quantity        int    `json:"quantity" validate:"min=1,max=99"`
	SelectedStoreID string `json:"selectedStoreId,omitempty"`
}

type AddItemResponse struct {
	Item *PurchaseItem `json:"item"`
}

type ListItemsRequest struct {
	ListID string `json:"listId" validate:"required"`
}

type ListItemsResponse struct {
	Items []*PurchaseItem `json:"items"`
}

// UpdateItemRequest changes only the fields that are set. An empty
// SelectedStoreID clears the manual store choice.
type UpdateItemRequest struct {
	ListID          string  `json:"listId" validate:"required"`
	ItemID          string  `json:"itemId" validate:"required"`
	Quantity        *int    `json:"quantity,omitempty" validate:"omitempty,min=1,max=99"`
	SelectedStoreID *string `json:"selectedStoreId,omitempty"`
}

type UpdateItemResponse struct {
	Item *PurchaseItem `json:"item"`
}

type DeleteItemRequest struct {
	ListID string `json:"listId" validate:"required"`
	ItemID string `json:"itemId" validate:"required"`
}

type DeleteItemResponse struct{}
