package domain

// MetricsSummary агрегированные показатели по выборке записей
//
// UtilizationRate - приближение: занятые минуты / (кол-во различных дат записей * WorkdayMinutes) * 100.
// При двойном бронировании или сменах короче условного рабочего дня значение
// может выходить за пределы [0, 100]; это осознанное поведение, не баг
type MetricsSummary struct {
	Total                  int
	ByStatus               map[AppointmentStatus]int
	Revenue                float64 // сумма цен услуг по записям со статусом completed
	AverageDurationMinutes float64 // средняя суммарная длительность услуг по всем записям выборки
	UtilizationRate        float64 // процент загрузки
}
