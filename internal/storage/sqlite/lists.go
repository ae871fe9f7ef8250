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

const listColumns = `id, user_id, name, status, created_at, updated_at`

func scanList(row rowScanner) (*models.PurchaseList, error) {
	list := &models.PurchaseList{}
	var name sql.NullString
	var status string
	err := row.Scan(&list.ID, &list.UserID, &name, &status, &list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		return nil, err
	}
	list.Name = name.String
	list.Status = models.PurchaseStatus(status)
	return list, nil
}

// CreatePurchaseList inserts a new purchase list.
func (s *SQLiteStore) CreatePurchaseList(ctx context.Context, list *models.PurchaseList) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if list.Status == "" {
		list.Status = models.PurchaseStatusPlanning
	}
	if list.CreatedAt == 0 {
		list.CreatedAt = time.Now().Unix()
	}
	list.UpdatedAt = list.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO purchase_lists (`+listColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID, list.UserID, nullIfEmpty(list.Name), string(list.Status), list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase list: %w", err)
	}
	return nil
}

// GetPurchaseList retrieves a purchase list owned by userID.
func (s *SQLiteStore) GetPurchaseList(ctx context.Context, userID, listID string) (*models.PurchaseList, error) {
	list, err := scanList(s.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM purchase_lists WHERE id = ? AND user_id = ?`,
		listID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("purchase list %s: %w", listID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase list: %w", err)
	}
	return list, nil
}

// ListPurchaseLists retrieves the user's purchase lists, newest first.
func (s *SQLiteStore) ListPurchaseLists(ctx context.Context, userID string) ([]*models.PurchaseList, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listColumns+` FROM purchase_lists WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.PurchaseList
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase lists: %w", err)
	}
	return lists, nil
}

// UpdatePurchaseList updates a list's name and status.
func (s *SQLiteStore) UpdatePurchaseList(ctx context.Context, list *models.PurchaseList) error {
	list.UpdatedAt = time.Now().Unix()

	res, err := s.db.ExecContext(ctx,
		`UPDATE purchase_lists SET name = ?, status = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		nullIfEmpty(list.Name), string(list.Status), list.UpdatedAt, list.ID, list.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase list: %w", err)
	}
	return checkAffected(res, "purchase list", list.ID)
}

// DeletePurchaseList removes a list together with its items, prices and allocations.
func (s *SQLiteStore) DeletePurchaseList(ctx context.Context, userID, listID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM purchase_lists WHERE id = ? AND user_id = ?",
		listID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete purchase list: %w", err)
	}
	return checkAffected(res, "purchase list", listID)
}
