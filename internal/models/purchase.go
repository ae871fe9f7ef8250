package models

// PurchaseStatus tracks where a purchase list is in its lifecycle.
type PurchaseStatus string

const (
	PurchaseStatusPlanning  PurchaseStatus = "planning"
	PurchaseStatusPurchased PurchaseStatus = "purchased"
)

// UnknownCardName is shown for items whose card reference was removed.
const UnknownCardName = "Unknown"

// PurchaseList groups the cards a user plans to buy.
type PurchaseList struct {
	// ID is the unique identifier for the list (UUID format).
	ID string

	// UserID is the owner of the list.
	UserID string

	// Name is optional; empty means the list is unnamed.
	Name string

	Status    PurchaseStatus
	CreatedAt int64
	UpdatedAt int64
}

// PurchaseItem is a single card with a required quantity on a purchase list.
// Exactly one of CardID and CustomCardID is set when the item is created.
type PurchaseItem struct {
	ID     string
	ListID string

	// CardID references the catalog. Empty when CustomCardID is used.
	CardID string

	// CustomCardID references a user-defined card. Empty when CardID is used.
	CustomCardID string

	// Quantity is the number of copies required, in [1, 99].
	Quantity int

	// SelectedStoreID is an optional manual store choice. Empty when unset.
	SelectedStoreID string

	CreatedAt int64

	// CardName is resolved from the referenced card when the item is read.
	CardName string

	// Prices holds the item's price entries when loaded for plan calculation.
	Prices []PriceEntry
}

// PriceEntry is the price a store charges for a purchase item.
type PriceEntry struct {
	ID      string
	ItemID  string
	StoreID string

	// Price is nil when the store does not carry the item. Zero is a valid price.
	Price *float64

	UpdatedAt int64
}

// Allocation is a manual assignment of part of an item's quantity to a store.
type Allocation struct {
	ID        string
	ItemID    string
	StoreID   string
	Quantity  int
	CreatedAt int64

	// StoreName and StoreColor are joined from the store when read.
	StoreName  string
	StoreColor string
}
