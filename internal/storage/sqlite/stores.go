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

const storeColumns = `id, user_id, name, color, seq, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStore(row rowScanner) (*models.Store, error) {
	st := &models.Store{}
	err := row.Scan(&st.ID, &st.UserID, &st.Name, &st.Color, &st.Seq, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

// CreateStore persists a new store. The store's sequence number is one past
// the user's highest existing sequence, and a NULL price entry is created
// for every purchase item on the user's lists, all in one transaction.
// Only a name clash is reported as storage.ErrConflict; a seq clash cannot
// happen while the transaction holds the write lock, and would surface as
// an internal error.
func (s *SQLiteStore) CreateStore(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if store.CreatedAt == 0 {
		store.CreatedAt = now
	}
	store.UpdatedAt = store.CreatedAt

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), -1) + 1 FROM stores WHERE user_id = ?",
		store.UserID,
	).Scan(&store.Seq)
	if err != nil {
		return fmt.Errorf("failed to allocate store sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO stores (`+storeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		store.ID, store.UserID, store.Name, store.Color, store.Seq, store.CreatedAt, store.UpdatedAt,
	)
	if uniqueViolationOn(err, "stores.name") {
		return fmt.Errorf("store %q: %w", store.Name, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert store: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT pi.id FROM purchase_items pi
		 JOIN purchase_lists pl ON pl.id = pi.list_id
		 WHERE pl.user_id = ?`,
		store.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to list purchase items: %w", err)
	}
	var itemIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan purchase item: %w", err)
		}
		itemIDs = append(itemIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate purchase items: %w", err)
	}

	for _, itemID := range itemIDs {
		if err := insertNullPrice(ctx, tx, itemID, store.ID, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertNullPrice creates an out-of-stock price row unless one already exists.
func insertNullPrice(ctx context.Context, tx *sql.Tx, itemID, storeID string, now int64) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO price_entries (id, item_id, store_id, price, updated_at)
		 VALUES (?, ?, ?, NULL, ?)
		 ON CONFLICT (item_id, store_id) DO NOTHING`,
		uuid.New().String(), itemID, storeID, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert price entry: %w", err)
	}
	return nil
}

// GetStore retrieves a store owned by userID.
func (s *SQLiteStore) GetStore(ctx context.Context, userID, storeID string) (*models.Store, error) {
	st, err := scanStore(s.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = ? AND user_id = ?`,
		storeID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store %s: %w", storeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return st, nil
}

// ListStores retrieves the user's stores in creation order.
func (s *SQLiteStore) ListStores(ctx context.Context, userID string) ([]*models.Store, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE user_id = ? ORDER BY seq ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []*models.Store
	for rows.Next() {
		st, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stores: %w", err)
	}

	return stores, nil
}

// UpdateStore changes a store's name and color. Seq is never modified.
func (s *SQLiteStore) UpdateStore(ctx context.Context, store *models.Store) error {
	store.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE stores SET name = ?, color = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		store.Name, store.Color, store.UpdatedAt, store.ID, store.UserID,
	)
	if uniqueViolationOn(err, "stores.name") {
		return fmt.Errorf("store %q: %w", store.Name, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	return checkAffected(res, "store", store.ID)
}

// DeleteStore removes a store. Its price entries and allocations cascade.
func (s *SQLiteStore) DeleteStore(ctx context.Context, userID, storeID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM stores WHERE id = ? AND user_id = ?",
		storeID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return checkAffected(res, "store", storeID)
}
