package clientdirectory

import "time"

// Client клиент салона из справочника клиентов
type Client struct {
	ID         int64     `json:"id"`
	TelegramID *int64    `json:"telegramId,omitempty"`
	FirstName  string    `json:"firstName"`
	LastName   *string   `json:"lastName,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
