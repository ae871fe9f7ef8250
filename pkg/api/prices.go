package api

// Price is what one store charges for a purchase item. A null price means
// the store does not carry the item; zero is a real price.
type Price struct {
	ID        string   `json:"id"`
	ItemID    string   `json:"itemId"`
	StoreID   string   `json:"storeId"`
	Price     *float64 `json:"price"`
	UpdatedAt int64    `json:"updatedAt"`
}

type ListPricesRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type ListPricesResponse struct {
	Prices []*Price `json:"prices"`
}

type SetPriceRequest struct {
	ItemID  string   `json:"itemId" validate:"required"`
	StoreID string   `json:"storeId" validate:"required"`
	Price   *float64 `json:"price" validate:"omitempty,gte=0,lte=9999"`
}

type SetPriceResponse struct {
	Price *Price `json:"price"`
}

type DeletePriceRequest struct {
	ItemID  string `json:"itemId" validate:"required"`
	StoreID string `json:"storeId" validate:"required"`
}

type DeletePriceResponse struct{}
