// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/cardplanner/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or is not visible
	// to the requesting user.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// AllocationCheck validates an allocation write against the item's quantity
// and the item's other allocations. Storage calls it inside the transaction
// that performs the write, so the values it sees cannot change before commit.
// An error returned by the check aborts the write and is returned unchanged.
type AllocationCheck func(itemQuantity int, others []*models.Allocation) error

// Store defines the persistence operations used by the services.
// Every lookup that takes a userID only returns records owned by that user;
// records owned by someone else are reported as ErrNotFound.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateStore inserts a store, assigns its creation sequence and creates
	// a nil price entry for every purchase item the user already has.
	CreateStore(ctx context.Context, store *models.Store) error
	GetStore(ctx context.Context, userID, storeID string) (*models.Store, error)
	// ListStores returns the user's stores ordered by creation sequence.
	ListStores(ctx context.Context, userID string) ([]*models.Store, error)
	UpdateStore(ctx context.Context, store *models.Store) error
	DeleteStore(ctx context.Context, userID, storeID string) error

	// Catalog and custom cards
	UpsertCards(ctx context.Context, cards []*models.Card) error
	GetCard(ctx context.Context, cardID string) (*models.Card, error)
	SearchCards(ctx context.Context, query string, limit int) ([]*models.Card, error)
	// UsersWithCards returns the IDs of users whose purchase lists contain
	// any of the given catalog cards.
	UsersWithCards(ctx context.Context, cardIDs []string) ([]string, error)
	CreateCustomCard(ctx context.Context, card *models.CustomCard) error
	GetCustomCard(ctx context.Context, userID, cardID string) (*models.CustomCard, error)
	ListCustomCards(ctx context.Context, userID string) ([]*models.CustomCard, error)

	// Purchase lists
	CreatePurchaseList(ctx context.Context, list *models.PurchaseList) error
	GetPurchaseList(ctx context.Context, userID, listID string) (*models.PurchaseList, error)
	ListPurchaseLists(ctx context.Context, userID string) ([]*models.PurchaseList, error)
	UpdatePurchaseList(ctx context.Context, list *models.PurchaseList) error
	DeletePurchaseList(ctx context.Context, userID, listID string) error

	// CreatePurchaseItem inserts an item and creates a nil price entry for
	// every store owned by userID.
	CreatePurchaseItem(ctx context.Context, userID string, item *models.PurchaseItem) error
	// GetPurchaseItem returns an item if its list belongs to userID.
	GetPurchaseItem(ctx context.Context, userID, itemID string) (*models.PurchaseItem, error)
	// ListPurchaseItems returns the list's items in creation order with
	// CardName resolved. When withPrices is set, Prices is populated too.
	ListPurchaseItems(ctx context.Context, listID string, withPrices bool) ([]*models.PurchaseItem, error)
	// UpdatePurchaseItem saves an item's quantity and selected store. check,
	// if non-nil, sees the stored quantity and all of the item's allocations.
	UpdatePurchaseItem(ctx context.Context, item *models.PurchaseItem, check AllocationCheck) error
	DeletePurchaseItem(ctx context.Context, listID, itemID string) error

	// Prices
	ListPrices(ctx context.Context, itemID string) ([]*models.PriceEntry, error)
	// UpsertPrice sets the price for an (item, store) pair, creating the row if needed.
	UpsertPrice(ctx context.Context, entry *models.PriceEntry) error
	DeletePrice(ctx context.Context, itemID, storeID string) error

	// Allocations
	ListAllocations(ctx context.Context, itemID string) ([]*models.Allocation, error)
	GetAllocation(ctx context.Context, allocationID string) (*models.Allocation, error)
	// CreateAllocation and UpdateAllocation run check, if non-nil, against
	// every allocation of the item except the one being written.
	CreateAllocation(ctx context.Context, allocation *models.Allocation, check AllocationCheck) error
	UpdateAllocation(ctx context.Context, allocation *models.Allocation, check AllocationCheck) error
	DeleteAllocation(ctx context.Context, allocationID string) error

	// Close releases any resources held by the store.
	Close() error
}
