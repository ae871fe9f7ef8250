package api

// Card is a catalog entry.
type Card struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	ImagePath string `json:"imagePath"`
}

// CustomCard is a card defined by the user.
type CustomCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"`
}

type SearchCardsRequest struct {
	Query string `json:"query" validate:"required,max=100"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

type SearchCardsResponse struct {
	Cards []*Card `json:"cards"`
}

type CreateCustomCardRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"max=20"`
}

type CreateCustomCardResponse struct {
	Card *CustomCard `json:"card"`
}

type ListCustomCardsRequest struct{}

type ListCustomCardsResponse struct {
	Cards []*CustomCard `json:"cards"`
}
