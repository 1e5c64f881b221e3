package compute_metrics

import (
	"github.com/bobylov03/salon/internal/domain"
)

// aggregate вычисляет сводку показателей по выборке записей
// Функция чистая: одинаковая выборка даёт одинаковую сводку
func aggregate(appointments []*domain.Appointment) domain.MetricsSummary {
	summary := domain.MetricsSummary{
		Total:    len(appointments),
		ByStatus: make(map[domain.AppointmentStatus]int),
	}

	if len(appointments) == 0 {
		return summary
	}

	totalDuration := 0
	bookedMinutes := 0
	days := make(map[string]struct{})

	for _, appt := range appointments {
		summary.ByStatus[appt.Status]++

		duration := appt.TotalDurationMinutes()
		totalDuration += duration

		// Выручка признаётся только по завершённым записям
		if appt.Status == domain.StatusCompleted {
			summary.Revenue += appt.TotalPrice()
		}

		// Загрузка считается по активным записям
		if appt.IsActive() {
			bookedMinutes += duration
		}

		days[appt.Date.Format(domain.DateFormat)] = struct{}{}
	}

	summary.AverageDurationMinutes = float64(totalDuration) / float64(len(appointments))

	// Приближённая оценка: занятые минуты к теоретической ёмкости
	// восьмичасового дня, при двойном бронировании может превышать 100
	capacity := len(days) * domain.WorkdayMinutes
	if capacity > 0 {
		summary.UtilizationRate = float64(bookedMinutes) / float64(capacity) * 100
	}

	return summary
}
