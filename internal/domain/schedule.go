package domain

import (
	"time"

	"github.com/bobylov03/salon/pkg/types"
)

// WorkingHoursRule повторяющееся еженедельное рабочее окно мастера
// Не более одного правила на (staff_id, day_of_week); отсутствие правила - выходной
type WorkingHoursRule struct {
	ID        int64
	StaffID   int64
	DayOfWeek int // 0 (понедельник) - 6 (воскресенье), см. DayOfWeek
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftMinutes возвращает длину смены в минутах
func (r *WorkingHoursRule) ShiftMinutes() int {
	return r.EndTime.Minutes() - r.StartTime.Minutes()
}

// TimeSlot производный слот сетки расписания (не хранится в БД)
type TimeSlot struct {
	Time types.TimeString
	// Appointments все записи, интервал которых накрывает слот
	// При двойном бронировании возможно больше одной; первая используется для отображения
	Appointments []*Appointment
	IsAvailable  bool
	IsPast       bool
}

// DaySchedule производное дневное расписание мастера (не хранится в БД)
type DaySchedule struct {
	Date      time.Time
	StaffID   int64
	IsWorkDay bool
	Rule      *WorkingHoursRule // nil для выходного дня
	Slots     []TimeSlot        // пусто для выходного дня
}

// WeekDay один день недельного расписания
// Для выходного дня список записей пуст независимо от содержимого БД
type WeekDay struct {
	Date         time.Time
	DayOfWeek    int
	IsWorkDay    bool
	Rule         *WorkingHoursRule
	Appointments []*Appointment // отсортированы по времени начала
}

// WeekSchedule производное недельное расписание: семь дней начиная с WeekStart
type WeekSchedule struct {
	StaffID   int64
	WeekStart time.Time
	Days      []WeekDay
}
