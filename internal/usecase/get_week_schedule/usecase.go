package get_week_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
	staffDir "github.com/bobylov03/salon/internal/integrations/staffdirectory"
	"github.com/bobylov03/salon/pkg/ptr"
)

const daysInWeek = 7

// UseCase use case для построения расписания мастера на неделю
type UseCase struct {
	apptRepo    AppointmentRepository
	whRepo      WorkingHoursRepository
	staffClient StaffDirectoryClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	whRepo WorkingHoursRepository,
	staffClient StaffDirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		whRepo:      whRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Execute выполняет use case построения недельного расписания
// Для рабочих дней к окну графика прикладываются записи дня по порядку,
// выходной показывается пустым независимо от содержимого хранилища записей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekSchedule: staff=%d, weekStart=%s", req.StaffID, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.StaffID <= 0 {
		uc.logger.Warn("GetWeekSchedule: invalid staffID=%d", req.StaffID)
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.WeekStart.IsZero() {
		uc.logger.Warn("GetWeekSchedule: weekStart is required")
		return nil, fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
	}

	resp := &Response{
		StaffID:   req.StaffID,
		WeekStart: req.WeekStart.Format(domain.DateFormat),
		Days:      make([]Day, 0, daysInWeek),
	}

	// 2. Имя мастера, недоступность справочника не валит чтение
	staff, err := uc.staffClient.GetStaffMember(ctx, req.StaffID)
	switch {
	case err == nil:
		resp.StaffName = ptr.Ptr(staff.FullName())
	case errors.Is(err, staffDir.ErrStaffNotFound):
		uc.logger.Warn("GetWeekSchedule: staff id=%d not found", req.StaffID)
		return nil, ErrStaffNotFound
	default:
		uc.logger.Warn("GetWeekSchedule: staff directory unavailable, degrading: %v", err)
	}

	// 3. Все правила графика мастера одним запросом
	rules, err := uc.whRepo.GetByStaff(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetWeekSchedule: failed to get working hours for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	ruleByDay := make(map[int]*domain.WorkingHoursRule, len(rules))
	for _, rule := range rules {
		ruleByDay[rule.DayOfWeek] = rule
	}

	// 4. Семь дней начиная с weekStart
	for i := 0; i < daysInWeek; i++ {
		date := req.WeekStart.AddDate(0, 0, i)
		dayOfWeek := domain.DayOfWeek(date)

		day := Day{
			Date:         date.Format(domain.DateFormat),
			DayOfWeek:    dayOfWeek,
			Appointments: []DayAppointment{},
		}

		rule, worked := ruleByDay[dayOfWeek]
		if worked {
			day.IsWorkDay = true
			day.WorkStart = ptr.Ptr(rule.StartTime.String())
			day.WorkEnd = ptr.Ptr(rule.EndTime.String())

			appointments, err := uc.apptRepo.GetByStaffAndDate(ctx, req.StaffID, date)
			if err != nil {
				uc.logger.Error("GetWeekSchedule: failed to get appointments for staff=%d date=%s: %v",
					req.StaffID, day.Date, err)
				return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			for _, appt := range appointments {
				day.Appointments = append(day.Appointments, newDayAppointment(appt))
			}
		}

		resp.Days = append(resp.Days, day)
	}

	uc.logger.Info("GetWeekSchedule: staff=%d weekStart=%s built", req.StaffID, resp.WeekStart)
	return resp, nil
}
