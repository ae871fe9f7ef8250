package models

// Store is a user-defined purchasing venue.
type Store struct {
	// ID is the unique identifier for the store (UUID format).
	ID string

	// UserID is the owner of the store.
	UserID string

	// Name is the display name, unique per user.
	Name string

	// Color is a "#RRGGBB" hex color, stored upper-case.
	Color string

	// Seq is the per-user creation sequence. It is assigned once at insert
	// and never renumbered; the optimal plan uses it to break price ties.
	Seq int64

	CreatedAt int64
	UpdatedAt int64
}
