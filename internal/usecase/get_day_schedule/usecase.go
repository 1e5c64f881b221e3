package get_day_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
	whRepo "github.com/bobylov03/salon/internal/infra/storage/workinghours"
	staffDir "github.com/bobylov03/salon/internal/integrations/staffdirectory"
	"github.com/bobylov03/salon/pkg/ptr"
)

// UseCase use case для построения расписания мастера на день
type UseCase struct {
	apptRepo     AppointmentRepository
	whRepo       WorkingHoursRepository
	staffClient  StaffDirectoryClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	whRepo WorkingHoursRepository,
	staffClient StaffDirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		whRepo:       whRepo,
		staffClient:  staffClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case построения расписания
// Расписание каждый раз вычисляется заново из графика и записей,
// производные данные нигде не хранятся
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: staff=%d, date=%s", req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.StaffID <= 0 {
		uc.logger.Warn("GetDaySchedule: invalid staffID=%d", req.StaffID)
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		uc.logger.Warn("GetDaySchedule: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resp := &Response{
		StaffID:      req.StaffID,
		Date:         req.Date.Format(domain.DateFormat),
		Slots:        []Slot{},
		Appointments: []SlotAppointment{},
	}

	// 2. Имя мастера, недоступность справочника не валит чтение
	staff, err := uc.staffClient.GetStaffMember(ctx, req.StaffID)
	switch {
	case err == nil:
		resp.StaffName = ptr.Ptr(staff.FullName())
	case errors.Is(err, staffDir.ErrStaffNotFound):
		uc.logger.Warn("GetDaySchedule: staff id=%d not found", req.StaffID)
		return nil, ErrStaffNotFound
	default:
		uc.logger.Warn("GetDaySchedule: staff directory unavailable, degrading: %v", err)
	}

	// 3. Правило графика на этот день недели
	rule, err := uc.whRepo.GetByStaffAndDay(ctx, req.StaffID, domain.DayOfWeek(req.Date))
	if err != nil {
		if errors.Is(err, whRepo.ErrRuleNotFound) {
			// Выходной: пустое расписание независимо от содержимого хранилища записей
			uc.logger.Info("GetDaySchedule: staff=%d has a day off on %s", req.StaffID, resp.Date)
			return resp, nil
		}
		uc.logger.Error("GetDaySchedule: failed to get working hours for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	resp.IsWorkDay = true
	resp.WorkStart = ptr.Ptr(rule.StartTime.String())
	resp.WorkEnd = ptr.Ptr(rule.EndTime.String())

	// 4. Активные записи дня, уже отсортированные по времени начала
	appointments, err := uc.apptRepo.GetByStaffAndDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get appointments for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Сетка слотов
	slots := calculateSlots(rule, appointments, req.Date, uc.timeProvider.Now())
	for _, slot := range slots {
		item := Slot{
			Time:        slot.Time.String(),
			IsAvailable: slot.IsAvailable,
			IsPast:      slot.IsPast,
		}
		for _, appt := range slot.Appointments {
			item.Appointments = append(item.Appointments, newSlotAppointment(appt))
		}
		resp.Slots = append(resp.Slots, item)
	}

	for _, appt := range appointments {
		resp.Appointments = append(resp.Appointments, newSlotAppointment(appt))
	}

	uc.logger.Info("GetDaySchedule: staff=%d date=%s, %d slots, %d appointments",
		req.StaffID, resp.Date, len(resp.Slots), len(resp.Appointments))
	return resp, nil
}
