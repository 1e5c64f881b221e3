package domain

import "time"

// DayOfWeek возвращает день недели даты в нумерации графиков: 0 = понедельник ... 6 = воскресенье
func DayOfWeek(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}
