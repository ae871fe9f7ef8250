package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
)

// itemSelect resolves the display name from whichever card the item points at.
const itemSelect = `
	SELECT pi.id, pi.list_id, pi.card_id, pi.custom_card_id, pi.quantity,
	       pi.selected_store_id, pi.created_at,
	       COALESCE(c.name, cc.name, '` + models.UnknownCardName + `')
	FROM purchase_items pi
	LEFT JOIN cards c ON c.id = pi.card_id
	LEFT JOIN custom_cards cc ON cc.id = pi.custom_card_id`

func scanItem(row rowScanner) (*models.PurchaseItem, error) {
	item := &models.PurchaseItem{}
	var cardID, customCardID, selectedStoreID sql.NullString
	err := row.Scan(
		&item.ID,
		&item.ListID,
		&cardID,
		&customCardID,
		&item.Quantity,
		&selectedStoreID,
		&item.CreatedAt,
		&item.CardName,
	)
	if err != nil {
		return nil, err
	}
	item.CardID = cardID.String
	item.CustomCardID = customCardID.String
	item.SelectedStoreID = selectedStoreID.String
	return item, nil
}

// CreatePurchaseItem inserts an item and gives it a NULL price entry for
// every store owned by userID, in one transaction.
func (s *SQLiteStore) CreatePurchaseItem(ctx context.Context, userID string, item *models.PurchaseItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchase_items (id, list_id, card_id, custom_card_id, quantity, selected_store_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID,
		item.ListID,
		nullIfEmpty(item.CardID),
		nullIfEmpty(item.CustomCardID),
		item.Quantity,
		nullIfEmpty(item.SelectedStoreID),
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase item: %w", err)
	}

	rows, err := tx.QueryContext(ctx, "SELECT id FROM stores WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to list stores: %w", err)
	}
	var storeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan store: %w", err)
		}
		storeIDs = append(storeIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate stores: %w", err)
	}

	for _, storeID := range storeIDs {
		if err := insertNullPrice(ctx, tx, item.ID, storeID, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPurchaseItem retrieves an item whose list is owned by userID.
func (s *SQLiteStore) GetPurchaseItem(ctx context.Context, userID, itemID string) (*models.PurchaseItem, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx,
		itemSelect+`
		JOIN purchase_lists pl ON pl.id = pi.list_id
		WHERE pi.id = ? AND pl.user_id = ?`,
		itemID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase item: %w", err)
	}
	return item, nil
}

// ListPurchaseItems retrieves a list's items in the order they were added.
// Callers are expected to have checked list ownership.
func (s *SQLiteStore) ListPurchaseItems(ctx context.Context, listID string, withPrices bool) ([]*models.PurchaseItem, error) {
	rows, err := s.db.QueryContext(ctx,
		itemSelect+`
		WHERE pi.list_id = ?
		ORDER BY pi.created_at ASC, pi.rowid ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase items: %w", err)
	}

	var items []*models.PurchaseItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan purchase item: %w", err)
		}
		items = append(items, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase items: %w", err)
	}

	if !withPrices || len(items) == 0 {
		return items, nil
	}

	byID := make(map[string]*models.PurchaseItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	priceRows, err := s.db.QueryContext(ctx,
		`SELECT pe.id, pe.item_id, pe.store_id, pe.price, pe.updated_at
		 FROM price_entries pe
		 JOIN purchase_items pi ON pi.id = pe.item_id
		 WHERE pi.list_id = ?`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list price entries: %w", err)
	}
	defer priceRows.Close()

	for priceRows.Next() {
		entry, err := scanPrice(priceRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price entry: %w", err)
		}
		if item, ok := byID[entry.ItemID]; ok {
			item.Prices = append(item.Prices, *entry)
		}
	}
	if err := priceRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price entries: %w", err)
	}

	return items, nil
}

// UpdatePurchaseItem updates an item's quantity and selected store. check
// runs in the same transaction against all of the item's allocations.
func (s *SQLiteStore) UpdatePurchaseItem(ctx context.Context, item *models.PurchaseItem, check storage.AllocationCheck) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkAllocations(ctx, tx, item.ID, "", check); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE purchase_items SET quantity = ?, selected_store_id = ? WHERE id = ? AND list_id = ?`,
		item.Quantity, nullIfEmpty(item.SelectedStoreID), item.ID, item.ListID,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase item: %w", err)
	}
	if err := checkAffected(res, "purchase item", item.ID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeletePurchaseItem removes an item together with its prices and allocations.
func (s *SQLiteStore) DeletePurchaseItem(ctx context.Context, listID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM purchase_items WHERE id = ? AND list_id = ?",
		itemID, listID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete purchase item: %w", err)
	}
	return checkAffected(res, "purchase item", itemID)
}
