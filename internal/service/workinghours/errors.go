package workinghours

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден в справочнике
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrRuleNotFound возвращается, когда правило графика не найдено
	ErrRuleNotFound = errors.New("working hours rule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDependencyUnavailable возвращается, когда справочник мастеров недоступен
	ErrDependencyUnavailable = errors.New("staff directory unavailable")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
