package idempotency

import "errors"

var (
	// ErrUnavailable возвращается, когда хранилище ключей недоступно
	ErrUnavailable = errors.New("idempotency: store unavailable")

	// ErrInFlight возвращается, когда запрос с тем же ключом ещё выполняется
	ErrInFlight = errors.New("idempotency: request with this key is in flight")
)
