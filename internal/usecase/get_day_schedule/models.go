package get_day_schedule

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
)

// Request модель запроса расписания мастера на день
type Request struct {
	StaffID int64     // ID мастера
	Date    time.Time // Дата (без времени)
}

// SlotAppointment запись, занимающая слот
type SlotAppointment struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// Slot слот расписания
type Slot struct {
	Time         string            `json:"time"`
	IsAvailable  bool              `json:"isAvailable"`
	IsPast       bool              `json:"isPast"`
	Appointments []SlotAppointment `json:"appointments,omitempty"` // Все записи, накрывающие слот, первая используется для отображения
}

// Response модель ответа с расписанием на день
type Response struct {
	StaffID   int64   `json:"staffId"`
	StaffName *string `json:"staffName,omitempty"` // Пусто, когда справочник мастеров недоступен
	Date      string  `json:"date"`
	IsWorkDay bool    `json:"isWorkDay"`

	WorkStart *string `json:"workStart,omitempty"`
	WorkEnd   *string `json:"workEnd,omitempty"`

	Slots        []Slot            `json:"slots"`
	Appointments []SlotAppointment `json:"appointments"` // Записи дня по возрастанию времени начала
}

// newSlotAppointment собирает DTO записи в слоте
func newSlotAppointment(a *domain.Appointment) SlotAppointment {
	return SlotAppointment{
		ID:        a.ID,
		ClientID:  a.ClientID,
		StartTime: a.StartTime.String(),
		EndTime:   a.EndTime.String(),
		Status:    string(a.Status),
	}
}
