package api

// OptimalPlan is the cheapest-store assignment for every item of a list.
// The same shape is returned by the Connect PlanService and the REST
// endpoint. Nullable fields are always present and encode as null.
type OptimalPlan struct {
	TotalPrice   float64            `json:"totalPrice"`
	Items        []PlanItem         `json:"items"`
	StoreSummary map[string]float64 `json:"storeSummary"`
}

type PlanItem struct {
	ItemID          string   `json:"itemId"`
	CardName        string   `json:"cardName"`
	Quantity        int      `json:"quantity"`
	SelectedStore   *string  `json:"selectedStore"`
	SelectedStoreID *string  `json:"selectedStoreId"`
	UnitPrice       *float64 `json:"unitPrice"`
	Subtotal        *float64 `json:"subtotal"`
	Status          string   `json:"status"`
}

type GetOptimalPlanRequest struct {
	ListID string `json:"listId" validate:"required"`
}
