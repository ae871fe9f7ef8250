package service

import (
	"github.com/mmynk/cardplanner/internal/calculator"
	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIStore(s *models.Store) *api.Store {
	return &api.Store{
		ID:        s.ID,
		Name:      s.Name,
		Color:     s.Color,
		Seq:       s.Seq,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toAPIList(l *models.PurchaseList) *api.PurchaseList {
	return &api.PurchaseList{
		ID:        l.ID,
		Name:      l.Name,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toAPIItem(i *models.PurchaseItem) *api.PurchaseItem {
	return &api.PurchaseItem{
		ID:              i.ID,
		ListID:          i.ListID,
		CardID:          i.CardID,
		CustomCardID:    i.CustomCardID,
		CardName:        i.CardName,
		Quantity:        i.Quantity,
		SelectedStoreID: i.SelectedStoreID,
		CreatedAt:       i.CreatedAt,
	}
}

func toAPIItems(items []*models.PurchaseItem) []*api.PurchaseItem {
	out := make([]*api.PurchaseItem, len(items))
	for i, item := range items {
		out[i] = toAPIItem(item)
	}
	return out
}

func toAPIPrice(p *models.PriceEntry) *api.Price {
	return &api.Price{
		ID:        p.ID,
		ItemID:    p.ItemID,
		StoreID:   p.StoreID,
		Price:     p.Price,
		UpdatedAt: p.UpdatedAt,
	}
}

func toAPIAllocation(a *models.Allocation) *api.Allocation {
	return &api.Allocation{
		ID:         a.ID,
		ItemID:     a.ItemID,
		StoreID:    a.StoreID,
		StoreName:  a.StoreName,
		StoreColor: a.StoreColor,
		Quantity:   a.Quantity,
		CreatedAt:  a.CreatedAt,
	}
}

func toAPICard(c *models.Card) *api.Card {
	return &api.Card{ID: c.ID, Name: c.Name, Color: c.Color, ImagePath: c.ImagePath}
}

func toAPICustomCard(c *models.CustomCard) *api.CustomCard {
	return &api.CustomCard{ID: c.ID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt}
}

// toCalculatorInput converts stored items and stores into calculator input.
// stores must already be ordered by creation sequence.
func toCalculatorInput(items []*models.PurchaseItem, stores []*models.Store) ([]calculator.Item, []calculator.Store) {
	calcItems := make([]calculator.Item, len(items))
	for i, item := range items {
		prices := make([]calculator.PriceEntry, len(item.Prices))
		for j, p := range item.Prices {
			prices[j] = calculator.PriceEntry{StoreID: p.StoreID, Price: p.Price}
		}
		calcItems[i] = calculator.Item{
			ID:       item.ID,
			Name:     item.CardName,
			Quantity: item.Quantity,
			Prices:   prices,
		}
	}

	calcStores := make([]calculator.Store, len(stores))
	for i, s := range stores {
		calcStores[i] = calculator.Store{ID: s.ID, Name: s.Name}
	}
	return calcItems, calcStores
}

func toAPIPlan(plan calculator.OptimalPlan) *api.OptimalPlan {
	items := make([]api.PlanItem, len(plan.Items))
	for i, item := range plan.Items {
		items[i] = api.PlanItem{
			ItemID:          item.ItemID,
			CardName:        item.CardName,
			Quantity:        item.Quantity,
			SelectedStore:   item.StoreName,
			SelectedStoreID: item.StoreID,
			UnitPrice:       item.UnitPrice,
			Subtotal:        item.Subtotal,
			Status:          string(item.Status),
		}
	}
	return &api.OptimalPlan{
		TotalPrice:   plan.TotalPrice,
		Items:        items,
		StoreSummary: plan.StoreSummary,
	}
}
