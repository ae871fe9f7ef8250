package models

// Card is an entry of the shared card catalog.
type Card struct {
	ID        string
	Name      string
	Color     string
	ImagePath string
}

// CustomCard is a card defined by a user that is not in the catalog.
type CustomCard struct {
	ID        string
	UserID    string
	Name      string
	Color     string
	CreatedAt int64
}
