package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrStaffNotFound возвращается, когда новый мастер не найден или неактивен
	ErrStaffNotFound = errors.New("reschedule_appointment: staff member not found")

	// ErrTimeConflict возвращается при пересечении с другой активной записью
	// Запись при этом остаётся без изменений
	ErrTimeConflict = errors.New("reschedule_appointment: time slot conflicts with another appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrDependencyUnavailable возвращается, когда справочник мастеров недоступен
	ErrDependencyUnavailable = errors.New("reschedule_appointment: dependency unavailable")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
