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

const allocationSelect = `
	SELECT pa.id, pa.item_id, pa.store_id, pa.quantity, pa.created_at, st.name, st.color
	FROM purchase_allocations pa
	JOIN stores st ON st.id = pa.store_id`

func scanAllocation(row rowScanner) (*models.Allocation, error) {
	a := &models.Allocation{}
	err := row.Scan(&a.ID, &a.ItemID, &a.StoreID, &a.Quantity, &a.CreatedAt, &a.StoreName, &a.StoreColor)
	return a, err
}

// ListAllocations retrieves an item's allocations in store creation order.
func (s *SQLiteStore) ListAllocations(ctx context.Context, itemID string) ([]*models.Allocation, error) {
	return listAllocations(ctx, s.db, itemID)
}

// GetAllocation retrieves an allocation by ID. Ownership is checked by the
// caller through the allocation's item.
func (s *SQLiteStore) GetAllocation(ctx context.Context, allocationID string) (*models.Allocation, error) {
	a, err := scanAllocation(s.db.QueryRowContext(ctx,
		allocationSelect+` WHERE pa.id = ?`,
		allocationID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("allocation %s: %w", allocationID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return a, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func listAllocations(ctx context.Context, q queryer, itemID string) ([]*models.Allocation, error) {
	rows, err := q.QueryContext(ctx,
		allocationSelect+` WHERE pa.item_id = ? ORDER BY st.seq ASC`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*models.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocations: %w", err)
	}
	return allocations, nil
}

// checkAllocations runs check against the item's stored quantity and its
// allocations other than skipID.
func checkAllocations(ctx context.Context, tx *sql.Tx, itemID, skipID string, check storage.AllocationCheck) error {
	if check == nil {
		return nil
	}

	var quantity int
	err := tx.QueryRowContext(ctx, "SELECT quantity FROM purchase_items WHERE id = ?", itemID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("purchase item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get item quantity: %w", err)
	}

	all, err := listAllocations(ctx, tx, itemID)
	if err != nil {
		return err
	}
	others := make([]*models.Allocation, 0, len(all))
	for _, a := range all {
		if a.ID != skipID {
			others = append(others, a)
		}
	}
	return check(quantity, others)
}

// CreateAllocation inserts an allocation after check accepts it. A second
// allocation for the same (item, store) pair is reported as storage.ErrConflict.
func (s *SQLiteStore) CreateAllocation(ctx context.Context, allocation *models.Allocation, check storage.AllocationCheck) error {
	if allocation.ID == "" {
		allocation.ID = uuid.New().String()
	}
	if allocation.CreatedAt == 0 {
		allocation.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkAllocations(ctx, tx, allocation.ItemID, "", check); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchase_allocations (id, item_id, store_id, quantity, created_at) VALUES (?, ?, ?, ?, ?)`,
		allocation.ID, allocation.ItemID, allocation.StoreID, allocation.Quantity, allocation.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("allocation for store %s: %w", allocation.StoreID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateAllocation changes an allocation's quantity after check accepts it.
func (s *SQLiteStore) UpdateAllocation(ctx context.Context, allocation *models.Allocation, check storage.AllocationCheck) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var itemID string
	err = tx.QueryRowContext(ctx, "SELECT item_id FROM purchase_allocations WHERE id = ?", allocation.ID).Scan(&itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("allocation %s: %w", allocation.ID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get allocation: %w", err)
	}

	if err := checkAllocations(ctx, tx, itemID, allocation.ID, check); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE purchase_allocations SET quantity = ? WHERE id = ?",
		allocation.Quantity, allocation.ID,
	); err != nil {
		return fmt.Errorf("failed to update allocation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteAllocation removes an allocation.
func (s *SQLiteStore) DeleteAllocation(ctx context.Context, allocationID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM purchase_allocations WHERE id = ?",
		allocationID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	return checkAffected(res, "allocation", allocationID)
}
