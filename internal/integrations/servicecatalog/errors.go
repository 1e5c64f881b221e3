package servicecatalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("servicecatalog: service not found")

	// ErrUnavailable возвращается, когда каталог услуг недоступен
	ErrUnavailable = errors.New("servicecatalog: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("servicecatalog: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("servicecatalog: internal error")
)
