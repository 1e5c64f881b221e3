package reschedule_appointment

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
	rescheduleAppointment "github.com/bobylov03/salon/internal/usecase/reschedule_appointment"
	"github.com/bobylov03/salon/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	StaffID   *int64 `json:"staffId,omitempty"`
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

	TotalPrice           float64 `json:"totalPrice"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`

	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		NewDate:       date,
		NewStartTime:  startTime,
		NewStaffID:    r.StaffID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		ClientID:             resp.ClientID,
		StaffID:              resp.StaffID,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		Status:               resp.Status,
		TotalPrice:           resp.TotalPrice,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
