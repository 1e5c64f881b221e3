package create_appointment

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID       int64            // ID клиента
	StaffID        *int64           // ID мастера (опционально, запись без мастера не проверяется на пересечения)
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала (например, "10:00")
	ServiceIDs     []int64          // Состав услуг, минимум одна
	Status         *string          // Начальный статус (опционально, по умолчанию pending)
	IdempotencyKey *string          // Ключ идемпотентности (опционально)
}

// ServiceItem услуга в составе записи
type ServiceItem struct {
	ServiceID       int64
	Title           string
	Price           float64
	DurationMinutes int
}

// Response модель ответа с созданной записью
type Response struct {
	ID       int64
	ClientID int64
	StaffID  *int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString // Всегда StartTime + суммарная длительность услуг
	Status    string

	Services             []ServiceItem
	TotalPrice           float64
	TotalDurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// newResponse собирает ответ из domain модели
func newResponse(a *domain.Appointment) *Response {
	resp := &Response{
		ID:                   a.ID,
		ClientID:             a.ClientID,
		StaffID:              a.StaffID,
		Date:                 a.Date,
		StartTime:            a.StartTime,
		EndTime:              a.EndTime,
		Status:               string(a.Status),
		Services:             make([]ServiceItem, 0, len(a.Services)),
		TotalPrice:           a.TotalPrice(),
		TotalDurationMinutes: a.TotalDurationMinutes(),
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	for _, svc := range a.Services {
		resp.Services = append(resp.Services, ServiceItem{
			ServiceID:       svc.ServiceID,
			Title:           svc.Title,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	return resp
}
