package calculator

// ItemStatus reports whether an item could be assigned to a store.
type ItemStatus string

const (
	StatusAvailable  ItemStatus = "available"
	StatusOutOfStock ItemStatus = "out_of_stock"
)

// Store is a purchasing venue. Callers pass stores ordered by creation
// sequence; the position in that slice breaks price ties.
type Store struct {
	ID   string
	Name string
}

// PriceEntry is the price one store charges for an item.
// A nil Price means the store does not carry the item.
type PriceEntry struct {
	StoreID string
	Price   *float64
}

// Item is one line of a purchase list together with its candidate prices.
type Item struct {
	ID       string
	Name     string
	Quantity int
	Prices   []PriceEntry
}

// ItemPlan is the store assignment chosen for a single item.
type ItemPlan struct {
	ItemID    string
	CardName  string
	Quantity  int
	StoreID   *string
	StoreName *string
	UnitPrice *float64
	Subtotal  *float64
	Status    ItemStatus
}

// OptimalPlan is the result of CalculateOptimalPlan.
type OptimalPlan struct {
	TotalPrice   float64
	Items        []ItemPlan
	StoreSummary map[string]float64 // store name -> sum of subtotals assigned to it
}

// CalculateOptimalPlan assigns every item to the store with the lowest price
// for that item. Items are minimized independently: the choice for one item
// never considers any other item or the number of stores visited.
//
// Ties on price go to the store that appears first in stores. Price entries
// whose store is absent from stores are ignored, and an item without any
// non-nil price is reported as out of stock.
func CalculateOptimalPlan(items []Item, stores []Store) OptimalPlan {
	plan := OptimalPlan{
		Items:        make([]ItemPlan, 0, len(items)),
		StoreSummary: make(map[string]float64),
	}
	if len(items) == 0 {
		return plan
	}

	for _, item := range items {
		result := ItemPlan{
			ItemID:   item.ID,
			CardName: item.Name,
			Quantity: item.Quantity,
			Status:   StatusOutOfStock,
		}

		store, price, ok := cheapestStore(item.Prices, stores)
		if ok {
			subtotal := price * float64(item.Quantity)
			plan.TotalPrice += subtotal
			plan.StoreSummary[store.Name] += subtotal

			id, name := store.ID, store.Name
			result.StoreID = &id
			result.StoreName = &name
			result.UnitPrice = &price
			result.Subtotal = &subtotal
			result.Status = StatusAvailable
		}

		plan.Items = append(plan.Items, result)
	}

	return plan
}

// cheapestStore walks stores in order so that the first store wins a tie,
// whatever order the price entries arrived in.
func cheapestStore(entries []PriceEntry, stores []Store) (Store, float64, bool) {
	prices := make(map[string]float64, len(entries))
	for _, e := range entries {
		if e.Price != nil {
			prices[e.StoreID] = *e.Price
		}
	}

	var (
		best      Store
		bestPrice float64
		found     bool
	)
	for _, s := range stores {
		p, ok := prices[s.ID]
		if !ok {
			continue
		}
		if !found || p < bestPrice {
			best, bestPrice, found = s, p, true
		}
	}
	return best, bestPrice, found
}
