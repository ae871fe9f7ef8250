package calculator

import (
	"encoding/json"
	"math"
	"testing"
)

func price(v float64) *float64 { return &v }

func TestCalculateOptimalPlan(t *testing.T) {
	storeA := Store{ID: "store-a", Name: "A"}
	storeB := Store{ID: "store-b", Name: "B"}
	storeC := Store{ID: "store-c", Name: "C"}

	tests := []struct {
		name         string
		items        []Item
		stores       []Store
		validateFunc func(t *testing.T, plan OptimalPlan)
	}{
		{
			name:   "empty items",
			items:  nil,
			stores: []Store{storeA},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				if plan.TotalPrice != 0 {
					t.Errorf("TotalPrice = %v, want 0", plan.TotalPrice)
				}
				if plan.Items == nil || len(plan.Items) != 0 {
					t.Errorf("Items = %#v, want empty non-nil slice", plan.Items)
				}
				if plan.StoreSummary == nil || len(plan.StoreSummary) != 0 {
					t.Errorf("StoreSummary = %#v, want empty non-nil map", plan.StoreSummary)
				}
			},
		},
		{
			name: "cheaper second store wins",
			items: []Item{{
				ID: "item-1", Name: "Blue-Eyes", Quantity: 2,
				Prices: []PriceEntry{
					{StoreID: "store-a", Price: price(100)},
					{StoreID: "store-b", Price: price(90)},
				},
			}},
			stores: []Store{storeA, storeB},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				got := plan.Items[0]
				if got.Status != StatusAvailable {
					t.Fatalf("Status = %s, want available", got.Status)
				}
				if *got.StoreName != "B" || *got.StoreID != "store-b" {
					t.Errorf("selected %s (%s), want B", *got.StoreName, *got.StoreID)
				}
				if *got.UnitPrice != 90 || *got.Subtotal != 180 {
					t.Errorf("unit=%v subtotal=%v, want 90/180", *got.UnitPrice, *got.Subtotal)
				}
				if plan.TotalPrice != 180 {
					t.Errorf("TotalPrice = %v, want 180", plan.TotalPrice)
				}
				if len(plan.StoreSummary) != 1 || plan.StoreSummary["B"] != 180 {
					t.Errorf("StoreSummary = %v, want map[B:180]", plan.StoreSummary)
				}
			},
		},
		{
			name: "tie goes to the earlier store",
			items: []Item{{
				ID: "item-1", Name: "Dark Magician", Quantity: 1,
				Prices: []PriceEntry{
					{StoreID: "store-b", Price: price(50)},
					{StoreID: "store-a", Price: price(50)},
				},
			}},
			stores: []Store{storeA, storeB},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				got := plan.Items[0]
				if *got.StoreName != "A" {
					t.Errorf("selected %s, want A", *got.StoreName)
				}
				if *got.Subtotal != 50 {
					t.Errorf("Subtotal = %v, want 50", *got.Subtotal)
				}
			},
		},
		{
			name: "all prices null is out of stock",
			items: []Item{{
				ID: "item-1", Name: "Exodia", Quantity: 1,
				Prices: []PriceEntry{
					{StoreID: "store-a", Price: nil},
					{StoreID: "store-b", Price: nil},
				},
			}},
			stores: []Store{storeA, storeB},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				got := plan.Items[0]
				if got.Status != StatusOutOfStock {
					t.Fatalf("Status = %s, want out_of_stock", got.Status)
				}
				if got.StoreID != nil || got.StoreName != nil || got.UnitPrice != nil || got.Subtotal != nil {
					t.Errorf("expected nil store and prices, got %+v", got)
				}
				if plan.TotalPrice != 0 {
					t.Errorf("TotalPrice = %v, want 0", plan.TotalPrice)
				}
				if len(plan.StoreSummary) != 0 {
					t.Errorf("StoreSummary = %v, want empty", plan.StoreSummary)
				}
			},
		},
		{
			name: "no stores and no price rows is out of stock",
			items: []Item{
				{ID: "item-1", Name: "Kuriboh", Quantity: 3},
			},
			stores: nil,
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				if plan.Items[0].Status != StatusOutOfStock {
					t.Errorf("Status = %s, want out_of_stock", plan.Items[0].Status)
				}
			},
		},
		{
			name: "two items aggregate into one store",
			items: []Item{
				{ID: "item-1", Name: "Pot of Greed", Quantity: 1, Prices: []PriceEntry{
					{StoreID: "store-a", Price: price(30)},
					{StoreID: "store-b", Price: price(40)},
				}},
				{ID: "item-2", Name: "Mirror Force", Quantity: 1, Prices: []PriceEntry{
					{StoreID: "store-a", Price: price(70)},
					{StoreID: "store-b", Price: nil},
				}},
			},
			stores: []Store{storeA, storeB},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				if plan.TotalPrice != 100 {
					t.Errorf("TotalPrice = %v, want 100", plan.TotalPrice)
				}
				if len(plan.StoreSummary) != 1 || plan.StoreSummary["A"] != 100 {
					t.Errorf("StoreSummary = %v, want map[A:100]", plan.StoreSummary)
				}
			},
		},
		{
			name: "zero price is available",
			items: []Item{{
				ID: "item-1", Name: "Token", Quantity: 4,
				Prices: []PriceEntry{{StoreID: "store-a", Price: price(0)}},
			}},
			stores: []Store{storeA},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				got := plan.Items[0]
				if got.Status != StatusAvailable {
					t.Fatalf("Status = %s, want available", got.Status)
				}
				if *got.UnitPrice != 0 || *got.Subtotal != 0 {
					t.Errorf("unit=%v subtotal=%v, want 0/0", *got.UnitPrice, *got.Subtotal)
				}
				if v, ok := plan.StoreSummary["A"]; !ok || v != 0 {
					t.Errorf("StoreSummary = %v, want map[A:0]", plan.StoreSummary)
				}
			},
		},
		{
			name: "price for unknown store is ignored",
			items: []Item{{
				ID: "item-1", Name: "Jinzo", Quantity: 1,
				Prices: []PriceEntry{
					{StoreID: "deleted-store", Price: price(1)},
					{StoreID: "store-c", Price: price(20)},
				},
			}},
			stores: []Store{storeA, storeC},
			validateFunc: func(t *testing.T, plan OptimalPlan) {
				got := plan.Items[0]
				if *got.StoreName != "C" || *got.UnitPrice != 20 {
					t.Errorf("selected %s at %v, want C at 20", *got.StoreName, *got.UnitPrice)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := CalculateOptimalPlan(tt.items, tt.stores)
			tt.validateFunc(t, plan)
			checkPlanProperties(t, tt.items, tt.stores, plan)
		})
	}
}

func TestCalculateOptimalPlan_TieBreakIgnoresEntryOrder(t *testing.T) {
	stores := []Store{{ID: "s1", Name: "First"}, {ID: "s2", Name: "Second"}, {ID: "s3", Name: "Third"}}
	orders := [][]PriceEntry{
		{{StoreID: "s1", Price: price(10)}, {StoreID: "s2", Price: price(10)}, {StoreID: "s3", Price: price(10)}},
		{{StoreID: "s3", Price: price(10)}, {StoreID: "s2", Price: price(10)}, {StoreID: "s1", Price: price(10)}},
		{{StoreID: "s2", Price: price(10)}, {StoreID: "s3", Price: price(10)}, {StoreID: "s1", Price: price(10)}},
	}

	for i, entries := range orders {
		plan := CalculateOptimalPlan([]Item{{ID: "x", Name: "x", Quantity: 1, Prices: entries}}, stores)
		if got := *plan.Items[0].StoreID; got != "s1" {
			t.Errorf("order %d: selected %s, want s1", i, got)
		}
	}
}

func TestCalculateOptimalPlan_Idempotent(t *testing.T) {
	stores := []Store{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	items := []Item{
		{ID: "1", Name: "One", Quantity: 3, Prices: []PriceEntry{{StoreID: "a", Price: price(1.5)}, {StoreID: "b", Price: price(1.25)}}},
		{ID: "2", Name: "Two", Quantity: 1, Prices: []PriceEntry{{StoreID: "c", Price: price(9)}}},
		{ID: "3", Name: "Three", Quantity: 99, Prices: []PriceEntry{{StoreID: "a", Price: nil}}},
		{ID: "4", Name: "Four", Quantity: 2, Prices: []PriceEntry{{StoreID: "b", Price: price(4)}, {StoreID: "a", Price: price(4)}}},
	}

	first, err := json.Marshal(CalculateOptimalPlan(items, stores))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(CalculateOptimalPlan(items, stores))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("plans differ:\n%s\n%s", first, second)
	}
}

// checkPlanProperties asserts the invariants every plan must satisfy.
func checkPlanProperties(t *testing.T, items []Item, stores []Store, plan OptimalPlan) {
	t.Helper()

	if len(plan.Items) != len(items) {
		t.Fatalf("got %d item plans, want %d", len(plan.Items), len(items))
	}

	known := make(map[string]bool, len(stores))
	for _, s := range stores {
		known[s.ID] = true
	}

	var total float64
	perStore := make(map[string]float64)
	for i, got := range plan.Items {
		item := items[i]
		if got.ItemID != item.ID {
			t.Errorf("item %d: ItemID = %s, want %s (order must be preserved)", i, got.ItemID, item.ID)
		}

		available := false
		for _, e := range item.Prices {
			if e.Price != nil && known[e.StoreID] {
				available = true
			}
		}
		if available != (got.Status == StatusAvailable) {
			t.Errorf("item %s: status %s, but available=%v", item.ID, got.Status, available)
		}

		if got.Status != StatusAvailable {
			continue
		}
		total += *got.Subtotal
		perStore[*got.StoreName] += *got.Subtotal

		for _, e := range item.Prices {
			if e.Price != nil && known[e.StoreID] && *e.Price < *got.UnitPrice {
				t.Errorf("item %s: store %s has %v, cheaper than selected %v", item.ID, e.StoreID, *e.Price, *got.UnitPrice)
			}
		}
	}

	if math.Abs(total-plan.TotalPrice) > 1e-9 {
		t.Errorf("TotalPrice = %v, sum of subtotals = %v", plan.TotalPrice, total)
	}
	if len(perStore) != len(plan.StoreSummary) {
		t.Errorf("StoreSummary has %d stores, want %d", len(plan.StoreSummary), len(perStore))
	}
	for name, want := range perStore {
		if got := plan.StoreSummary[name]; math.Abs(got-want) > 1e-9 {
			t.Errorf("StoreSummary[%s] = %v, want %v", name, got, want)
		}
	}
}
