package models

import (
	"errors"
	"time"

	"github.com/bobylov03/salon/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение записей с гибкой фильтрацией
type ListAppointmentsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	StaffID         *int64     `json:"staffId,omitempty"`         // Фильтр по мастеру (опционально)
	ClientID        *int64     `json:"clientId,omitempty"`        // Фильтр по клиенту (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		StaffID:         r.StaffID,
		ClientID:        r.ClientID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason,omitempty"` // Только для status=cancelled
}

// UpdateServicesRequest запрос на замену состава услуг записи
type UpdateServicesRequest struct {
	ServiceIDs []int64 `json:"serviceIds"`
}

// Response модели

// ServiceItem услуга в составе записи
type ServiceItem struct {
	ServiceID       int64   `json:"serviceId"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"clientId"`
	StaffID  *int64 `json:"staffId,omitempty"`

	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
	Status    string `json:"status"`

	Services             []ServiceItem `json:"services"`
	TotalPrice           float64       `json:"totalPrice"`
	TotalDurationMinutes int           `json:"totalDurationMinutes"`

	StatusChangedAt    *time.Time `json:"statusChangedAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// ToDomainStatus конвертирует строку в domain статус
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return parsed, nil
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                   a.ID,
		ClientID:             a.ClientID,
		StaffID:              a.StaffID,
		Date:                 a.Date.Format(domain.DateFormat),
		StartTime:            a.StartTime.String(),
		EndTime:              a.EndTime.String(),
		Status:               string(a.Status),
		Services:             make([]ServiceItem, 0, len(a.Services)),
		TotalPrice:           a.TotalPrice(),
		TotalDurationMinutes: a.TotalDurationMinutes(),
		StatusChangedAt:      a.StatusChangedAt,
		CancellationReason:   a.CancellationReason,
		CancelledAt:          a.CancelledAt,
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

// FromDomainAppointmentList конвертирует список записей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}
