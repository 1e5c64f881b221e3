package clientdirectory

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден в справочнике
	ErrClientNotFound = errors.New("clientdirectory: client not found")

	// ErrUnavailable возвращается, когда справочник клиентов недоступен
	ErrUnavailable = errors.New("clientdirectory: service unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе справочника
	ErrInvalidResponse = errors.New("clientdirectory: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("clientdirectory: internal error")
)
