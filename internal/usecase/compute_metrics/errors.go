package compute_metrics

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_metrics: invalid input data")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("compute_metrics: internal error")
)
