package staffdirectory

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден в справочнике
	ErrStaffNotFound = errors.New("staffdirectory: staff member not found")

	// ErrUnavailable возвращается, когда справочник персонала недоступен
	ErrUnavailable = errors.New("staffdirectory: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе справочника
	ErrInvalidResponse = errors.New("staffdirectory: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffdirectory: internal error")
)
