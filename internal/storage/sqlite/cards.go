package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cardplanner/internal/models"
	"github.com/mmynk/cardplanner/internal/storage"
)

// UpsertCards inserts or replaces catalog cards by ID.
func (s *SQLiteStore) UpsertCards(ctx context.Context, cards []*models.Card) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, card := range cards {
		if card.ID == "" {
			card.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cards (id, name, color, image_path) VALUES (?, ?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET name = excluded.name, color = excluded.color, image_path = excluded.image_path`,
			card.ID, card.Name, card.Color, card.ImagePath,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert card %s: %w", card.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCard retrieves a catalog card by ID.
func (s *SQLiteStore) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	card := &models.Card{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, color, image_path FROM cards WHERE id = ?",
		cardID,
	).Scan(&card.ID, &card.Name, &card.Color, &card.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("card %s: %w", cardID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// cardIDBatch keeps IN lists well under SQLite's bound parameter limit.
const cardIDBatch = 500

// UsersWithCards returns the distinct owners of lists that contain any of cardIDs.
func (s *SQLiteStore) UsersWithCards(ctx context.Context, cardIDs []string) ([]string, error) {
	seen := make(map[string]bool)
	var users []string
	for start := 0; start < len(cardIDs); start += cardIDBatch {
		batch := cardIDs[start:min(start+cardIDBatch, len(cardIDs))]
		args := make([]interface{}, len(batch))
		for i, id := range batch {
			args[i] = id
		}

		rows, err := s.db.QueryContext(ctx,
			`SELECT DISTINCT pl.user_id FROM purchase_items pi
			 JOIN purchase_lists pl ON pl.id = pi.list_id
			 WHERE pi.card_id IN (?`+strings.Repeat(", ?", len(batch)-1)+`)`,
			args...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to find card owners: %w", err)
		}
		for rows.Next() {
			var userID string
			if err := rows.Scan(&userID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan user: %w", err)
			}
			if !seen[userID] {
				seen[userID] = true
				users = append(users, userID)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
	}
	return users, nil
}

// SearchCards returns catalog cards whose name contains query, case-insensitively.
func (s *SQLiteStore) SearchCards(ctx context.Context, query string, limit int) ([]*models.Card, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, image_path FROM cards
		 WHERE lower(name) LIKE ? ESCAPE '\'
		 ORDER BY name ASC LIMIT ?`,
		pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card := &models.Card{}
		if err := rows.Scan(&card.ID, &card.Name, &card.Color, &card.ImagePath); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// CreateCustomCard persists a user-defined card.
func (s *SQLiteStore) CreateCustomCard(ctx context.Context, card *models.CustomCard) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	if card.CreatedAt == 0 {
		card.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO custom_cards (id, user_id, name, color, created_at) VALUES (?, ?, ?, ?, ?)",
		card.ID, card.UserID, card.Name, card.Color, card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert custom card: %w", err)
	}
	return nil
}

// GetCustomCard retrieves a custom card owned by userID.
func (s *SQLiteStore) GetCustomCard(ctx context.Context, userID, cardID string) (*models.CustomCard, error) {
	card := &models.CustomCard{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, color, created_at FROM custom_cards WHERE id = ? AND user_id = ?",
		cardID, userID,
	).Scan(&card.ID, &card.UserID, &card.Name, &card.Color, &card.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("custom card %s: %w", cardID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get custom card: %w", err)
	}
	return card, nil
}

// ListCustomCards retrieves the user's custom cards, oldest first.
func (s *SQLiteStore) ListCustomCards(ctx context.Context, userID string) ([]*models.CustomCard, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, color, created_at FROM custom_cards WHERE user_id = ? ORDER BY created_at, rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.CustomCard
	for rows.Next() {
		card := &models.CustomCard{}
		if err := rows.Scan(&card.ID, &card.UserID, &card.Name, &card.Color, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom cards: %w", err)
	}
	return cards, nil
}
