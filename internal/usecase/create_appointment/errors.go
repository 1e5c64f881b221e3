package create_appointment

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден в справочнике
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrTimeConflict возвращается при пересечении с другой активной записью
	ErrTimeConflict = errors.New("create_appointment: time slot conflicts with another appointment")

	// ErrDuplicateRequest возвращается, когда запрос с этим ключом идемпотентности уже обрабатывается
	ErrDuplicateRequest = errors.New("create_appointment: duplicate request in flight")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrDependencyUnavailable возвращается, когда внешний сервис недоступен
	ErrDependencyUnavailable = errors.New("create_appointment: dependency unavailable")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_appointment: internal error")
)
