package get_week_schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден в справочнике
	ErrStaffNotFound = errors.New("get_week_schedule: staff member not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_week_schedule: invalid input data")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("get_week_schedule: internal error")
)
