package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot generation constants
const (
	// SlotStepMinutes фиксированный шаг сетки слотов
	SlotStepMinutes = 30
)

// Business validation constants
const (
	// MinShiftMinutes минимальная длина рабочей смены (1 час)
	MinShiftMinutes = 60
	// MaxShiftMinutes максимальная длина рабочей смены (14 часов)
	MaxShiftMinutes = 14 * 60

	MinDayOfWeek = 0
	MaxDayOfWeek = 6

	// MaxServicesPerAppointment верхняя граница числа услуг в одной записи
	MaxServicesPerAppointment = 20

	MaxCancellationReasonLength = 500
)

// Analytics constants
const (
	// WorkdayMinutes условная длина рабочего дня мастера для расчёта загрузки
	// Используется как знаменатель utilization rate (приближение, см. MetricsSummary)
	WorkdayMinutes = 8 * 60
)

// InactiveStatuses статусы, при которых запись не занимает интервал мастера
// Используется при фильтрации для расчёта слотов и проверки пересечений
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы, при которых запись занимает интервал мастера
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusRescheduled,
	StatusWaitlisted,
}
