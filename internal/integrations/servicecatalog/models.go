package servicecatalog

// Service услуга из каталога
type Service struct {
	ID              int64   `json:"id"`
	CategoryID      int64   `json:"categoryId"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	IsActive        bool    `json:"isActive"`
}
