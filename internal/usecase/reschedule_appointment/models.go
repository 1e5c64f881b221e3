package reschedule_appointment

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID записи
	NewDate       time.Time        // Новая дата
	NewStartTime  types.TimeString // Новое время начала
	NewStaffID    *int64           // Новый мастер (опционально, nil оставляет текущего)
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID       int64
	ClientID int64
	StaffID  *int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string

	TotalPrice           float64
	TotalDurationMinutes int

	UpdatedAt time.Time
}

// newResponse собирает ответ из domain модели
func newResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:                   a.ID,
		ClientID:             a.ClientID,
		StaffID:              a.StaffID,
		Date:                 a.Date,
		StartTime:            a.StartTime,
		EndTime:              a.EndTime,
		Status:               string(a.Status),
		TotalPrice:           a.TotalPrice(),
		TotalDurationMinutes: a.TotalDurationMinutes(),
		UpdatedAt:            a.UpdatedAt,
	}
}
