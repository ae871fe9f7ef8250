package api

// Store is a user-defined purchasing venue. Seq is the creation sequence
// used to break price ties in the optimal plan.
type Store struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Seq       int64  `json:"seq"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type CreateStoreRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Color string `json:"color" validate:"required,len=7,hexcolor"`
}

type CreateStoreResponse struct {
	Store *Store `json:"store"`
}

type ListStoresRequest struct{}

type ListStoresResponse struct {
	Stores []*Store `json:"stores"`
}

// UpdateStoreRequest changes only the fields that are set.
type UpdateStoreRequest struct {
	StoreID string  `json:"storeId" validate:"required"`
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Color   *string `json:"color,omitempty" validate:"omitempty,len=7,hexcolor"`
}

type UpdateStoreResponse struct {
	Store *Store `json:"store"`
}

type DeleteStoreRequest struct {
	StoreID string `json:"storeId" validate:"required"`
}

type DeleteStoreResponse struct{}
