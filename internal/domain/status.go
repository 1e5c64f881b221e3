package domain

import "errors"

// ErrUnknownStatus возвращается при неизвестном статусе записи
var ErrUnknownStatus = errors.New("domain: unknown appointment status")

// ErrInvalidTransition возвращается при недопустимом переходе статуса
var ErrInvalidTransition = errors.New("domain: invalid status transition")

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusWaitlisted  AppointmentStatus = "waitlisted"
)

// statusTransitions таблица допустимых переходов статусов
// pending -> completed разрешён: администратор может закрыть прошедшую запись
// без промежуточных статусов (см. DESIGN.md)
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:     {StatusConfirmed, StatusCancelled, StatusCompleted, StatusRescheduled, StatusWaitlisted},
	StatusConfirmed:   {StatusInProgress, StatusCancelled, StatusNoShow, StatusRescheduled, StatusWaitlisted},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusPending},
	StatusWaitlisted:  {StatusPending},
	// Терминальные статусы - переходов нет
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// ParseStatus конвертирует строку в AppointmentStatus с валидацией
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.Valid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// Valid возвращает true для известного статуса
func (s AppointmentStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal возвращает true, если из статуса нет переходов
func (s AppointmentStatus) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// IsActive возвращает true, если запись в этом статусе занимает интервал мастера
func (s AppointmentStatus) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// CanTransitionTo проверяет допустимость перехода s -> next по таблице переходов
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
