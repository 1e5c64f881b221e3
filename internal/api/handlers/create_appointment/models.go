package create_appointment

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
	createAppointment "github.com/bobylov03/salon/internal/usecase/create_appointment"
	"github.com/bobylov03/salon/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID   int64   `json:"clientId"`
	StaffID    *int64  `json:"staffId,omitempty"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	ServiceIDs []int64 `json:"serviceIds"`
	Status     *string `json:"status,omitempty"` // По умолчанию pending
}

// ServiceItem услуга в составе записи
type ServiceItem struct {
	ServiceID       int64   `json:"serviceId"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"clientId"`
	StaffID  *int64 `json:"staffId,omitempty"`

	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`

	Services             []ServiceItem `json:"services"`
	TotalPrice           float64       `json:"totalPrice"`
	TotalDurationMinutes int           `json:"totalDurationMinutes"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(idempotencyKey string) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		ClientID:   r.ClientID,
		StaffID:    r.StaffID,
		Date:       date,
		StartTime:  startTime,
		ServiceIDs: r.ServiceIDs,
		Status:     r.Status,
	}

	if idempotencyKey != "" {
		req.IdempotencyKey = &idempotencyKey
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:                   resp.ID,
		ClientID:             resp.ClientID,
		StaffID:              resp.StaffID,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		Status:               resp.Status,
		Services:             make([]ServiceItem, 0, len(resp.Services)),
		TotalPrice:           resp.TotalPrice,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, svc := range resp.Services {
		out.Services = append(out.Services, ServiceItem{
			ServiceID:       svc.ServiceID,
			Title:           svc.Title,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	return out
}
