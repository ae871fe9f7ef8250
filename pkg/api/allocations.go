package api

// Allocation assigns part of an item's quantity to a store by hand.
type Allocation struct {
	ID         string `json:"id"`
	ItemID     string `json:"itemId"`
	StoreID    string `json:"storeId"`
	StoreName  string `json:"storeName"`
	StoreColor string `json:"storeColor"`
	Quantity   int    `json:"quantity"`
	CreatedAt  int64  `json:"createdAt"`
}

type ListAllocationsRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type ListAllocationsResponse struct {
	Allocations []*Allocation `json:"allocations"`
}

type CreateAllocationRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	StoreID  string `json:"storeId" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1,max=99"`
}

type CreateAllocationResponse struct {
	Allocation *Allocation `json:"allocation"`
}

type UpdateAllocationRequest struct {
	AllocationID string `json:"allocationId" validate:"required"`
	Quantity     int    `json:"quantity" validate:"min=1,max=99"`
}

type UpdateAllocationResponse struct {
	Allocation *Allocation `json:"allocation"`
}

type DeleteAllocationRequest struct {
	AllocationID string `json:"allocationId" validate:"required"`
}

type DeleteAllocationResponse struct{}
