package get_week_schedule

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
)

// Request модель запроса расписания мастера на неделю
type Request struct {
	StaffID   int64     // ID мастера
	WeekStart time.Time // Первая дата недели (без времени)
}

// DayAppointment запись в дневной колонке недели
type DayAppointment struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// Day один день недельного расписания
type Day struct {
	Date      string `json:"date"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = понедельник ... 6 = воскресенье
	IsWorkDay bool   `json:"isWorkDay"`

	WorkStart *string `json:"workStart,omitempty"`
	WorkEnd   *string `json:"workEnd,omitempty"`

	Appointments []DayAppointment `json:"appointments"` // Пустой для выходных даже при наличии записей
}

// Response модель ответа с расписанием на неделю
type Response struct {
	StaffID   int64   `json:"staffId"`
	StaffName *string `json:"staffName,omitempty"`
	WeekStart string  `json:"weekStart"`
	Days      []Day   `json:"days"`
}

// newDayAppointment собирает DTO записи дня
func newDayAppointment(a *domain.Appointment) DayAppointment {
	return DayAppointment{
		ID:        a.ID,
		ClientID:  a.ClientID,
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		Status:    string(a.Status),
	}
}
