package get_day_schedule

import (
	"time"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/pkg/types"
)

// calculateSlots строит сетку слотов рабочего дня
// Кандидаты генерируются из окна правила графика с фиксированным шагом,
// слот занят, когда его время попадает в интервал [start, end) какой-либо записи
// Функция детерминирована: одинаковые входы дают одинаковую сетку
func calculateSlots(rule *domain.WorkingHoursRule, appointments []*domain.Appointment, date time.Time, now time.Time) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0, rule.ShiftMinutes()/domain.SlotStepMinutes)

	for minutes := rule.StartTime.Minutes(); minutes+domain.SlotStepMinutes <= rule.EndTime.Minutes(); minutes += domain.SlotStepMinutes {
		slotTime, err := types.NewTimeStringFromMinutes(minutes)
		if err != nil {
			break
		}

		slot := domain.TimeSlot{
			Time:        slotTime,
			IsAvailable: true,
			IsPast:      isPast(date, slotTime, now),
		}

		// Все накрывающие записи сохраняются, при двойном бронировании их больше одной
		for _, appt := range appointments {
			if appt.CoversSlot(slotTime) {
				slot.Appointments = append(slot.Appointments, appt)
				slot.IsAvailable = false
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

// isPast проверяет, что момент слота раньше текущего времени
// Момент строится в зоне даты, иначе при несовпадении зоны сервера и зоны
// дат слоты у границы суток меняли бы флаг
func isPast(date time.Time, slotTime types.TimeString, now time.Time) bool {
	minutes := slotTime.Minutes()
	moment := time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
	return moment.Before(now)
}
