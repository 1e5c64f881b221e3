package domain

import (
	"sort"
	"time"

	"github.com/bobylov03/salon/pkg/types"
)

// ServiceSelection выбранная услуга в составе записи
// Цена и длительность денормализованы из каталога услуг на момент создания
type ServiceSelection struct {
	ServiceID       int64
	Title           string
	Price           float64
	DurationMinutes int
}

// Appointment represents a client appointment in the salon
type Appointment struct {
	ID       int64
	ClientID int64
	StaffID  *int64 // nil, пока мастер не назначен
	Date     time.Time
	// StartTime время начала, EndTime производное: StartTime + сумма длительностей услуг
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AppointmentStatus

	// Services упорядоченный список выбранных услуг
	Services []ServiceSelection

	StatusChangedAt    *time.Time
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its staff interval
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// TotalDurationMinutes возвращает суммарную длительность услуг записи
func (a *Appointment) TotalDurationMinutes() int {
	total := 0
	for _, s := range a.Services {
		total += s.DurationMinutes
	}
	return total
}

// TotalPrice возвращает суммарную стоимость услуг записи
func (a *Appointment) TotalPrice() float64 {
	total := 0.0
	for _, s := range a.Services {
		total += s.Price
	}
	return total
}

// RecomputeEndTime пересчитывает EndTime из StartTime и списка услуг
// Вызывается при любом изменении списка услуг или времени начала
func (a *Appointment) RecomputeEndTime() error {
	end, err := a.StartTime.AddMinutes(a.TotalDurationMinutes())
	if err != nil {
		return err
	}
	a.EndTime = end
	return nil
}

// CoversSlot проверяет, что время слота попадает в интервал записи [start, end)
func (a *Appointment) CoversSlot(slot types.TimeString) bool {
	return !slot.IsBefore(a.StartTime) && slot.IsBefore(a.EndTime)
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	StaffID         *int64             // Фильтр по мастеру (опционально)
	ClientID        *int64             // Фильтр по клиенту (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые и no-show записи
}

// FindOverlap ищет активную запись, интервал которой пересекается с [start, end)
// appointments должны быть отсортированы по StartTime по возрастанию -
// скан прерывается, как только начало записи достигает end
// excludeID исключает запись из проверки (для reschedule самой себя)
//
// Пересечение полуинтервалов: start < other.End && end > other.Start
// Граничащие интервалы (10:00-11:00 и 11:00-12:00) не пересекаются
func FindOverlap(appointments []*Appointment, start, end types.TimeString, excludeID int64) *Appointment {
	for _, appt := range appointments {
		if !appt.StartTime.IsBefore(end) {
			break
		}
		if appt.ID == excludeID || !appt.IsActive() {
			continue
		}
		if appt.EndTime.IsAfter(start) {
			return appt
		}
	}
	return nil
}

// SortByStartTime сортирует записи по времени начала по возрастанию
func SortByStartTime(appointments []*Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].StartTime.IsBefore(appointments[j].StartTime)
	})
}
