package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cardplanner/internal/models"
)

func scanPrice(row rowScanner) (*models.PriceEntry, error) {
	entry := &models.PriceEntry{}
	var price sql.NullFloat64
	if err := row.Scan(&entry.ID, &entry.ItemID, &entry.StoreID, &price, &entry.UpdatedAt); err != nil {
		return nil, err
	}
	if price.Valid {
		p := price.Float64
		entry.Price = &p
	}
	return entry, nil
}

// ListPrices retrieves the price entries of an item, in store creation order.
func (s *SQLiteStore) ListPrices(ctx context.Context, itemID string) ([]*models.PriceEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pe.id, pe.item_id, pe.store_id, pe.price, pe.updated_at
		 FROM price_entries pe
		 JOIN stores st ON st.id = pe.store_id
		 WHERE pe.item_id = ?
		 ORDER BY st.seq ASC`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var entries []*models.PriceEntry
	for rows.Next() {
		entry, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prices: %w", err)
	}
	return entries, nil
}

// UpsertPrice sets the price for an (item, store) pair. A nil Price marks the
// store as out of stock for the item.
func (s *SQLiteStore) UpsertPrice(ctx context.Context, entry *models.PriceEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.UpdatedAt = time.Now().Unix()

	var price interface{}
	if entry.Price != nil {
		price = *entry.Price
	}

	// RETURNING gives back the existing row's ID when the upsert updated it.
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO price_entries (id, item_id, store_id, price, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (item_id, store_id) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at
		 RETURNING id`,
		entry.ID, entry.ItemID, entry.StoreID, price, entry.UpdatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert price: %w", err)
	}
	return nil
}

// DeletePrice removes the price entry for an (item, store) pair.
func (s *SQLiteStore) DeletePrice(ctx context.Context, itemID, storeID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM price_entries WHERE item_id = ? AND store_id = ?",
		itemID, storeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete price: %w", err)
	}
	return checkAffected(res, "price entry", itemID+"/"+storeID)
}
