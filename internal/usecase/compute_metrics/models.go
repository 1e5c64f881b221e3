package compute_metrics

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
)

// Request модель запроса сводки показателей
type Request struct {
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
	StaffID   *int64     // Фильтр по мастеру (опционально)
	Status    *string    // Фильтр по статусу (опционально)
}

// Response модель ответа со сводкой показателей
type Response struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`

	Revenue                float64 `json:"revenue"`                // Только по завершённым записям
	AverageDurationMinutes float64 `json:"averageDurationMinutes"` // По всем записям выборки
	UtilizationRate        float64 `json:"utilizationRate"`        // Процент, приближённая оценка
}

// newResponse собирает ответ из domain сводки
func newResponse(summary domain.MetricsSummary) *Response {
	resp := &Response{
		Total:                  summary.Total,
		ByStatus:               make(map[string]int, len(summary.ByStatus)),
		Revenue:                summary.Revenue,
		AverageDurationMinutes: summary.AverageDurationMinutes,
		UtilizationRate:        summary.UtilizationRate,
	}

	for status, count := range summary.ByStatus {
		resp.ByStatus[string(status)] = count
	}

	return resp
}
