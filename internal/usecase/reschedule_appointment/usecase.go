package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
	apptRepo "github.com/bobylov03/salon/internal/infra/storage/appointment"
	staffDir "github.com/bobylov03/salon/internal/integrations/staffdirectory"
)

// UseCase use case для переноса записи на другое время, дату или мастера
type UseCase struct {
	apptRepo    AppointmentRepository
	staffClient StaffDirectoryClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	staffClient StaffDirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:    apptRepo,
		staffClient: staffClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case переноса записи
// Перенос либо коммитится целиком, либо запись остаётся без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, date=%s, time=%s, staff=%v",
		req.AppointmentID, req.NewDate.Format(domain.DateFormat), req.NewStartTime, req.NewStaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	appointment, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: repository error for id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Определяем целевого мастера
	targetStaffID := appointment.StaffID
	if req.NewStaffID != nil {
		staff, err := uc.staffClient.GetStaffMember(ctx, *req.NewStaffID)
		if err != nil {
			if errors.Is(err, staffDir.ErrStaffNotFound) {
				uc.logger.Warn("RescheduleAppointment: staff id=%d not found", *req.NewStaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("RescheduleAppointment: staff directory error for id=%d: %v", *req.NewStaffID, err)
			return nil, fmt.Errorf("%w: staff directory: %v", ErrDependencyUnavailable, err)
		}
		if !staff.IsActive {
			uc.logger.Warn("RescheduleAppointment: staff id=%d is inactive", *req.NewStaffID)
			return nil, ErrStaffNotFound
		}
		targetStaffID = req.NewStaffID
	}

	// 4. Время окончания выводится из текущего состава услуг
	newEndTime, err := req.NewStartTime.AddMinutes(appointment.TotalDurationMinutes())
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: duration pushes appointment id=%d past midnight", req.AppointmentID)
		return nil, fmt.Errorf("%w: total duration does not fit into the day", ErrInvalidInput)
	}

	// 5. Проверка пересечений и перенос в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Пересечения проверяются только для активных записей с мастером
		if targetStaffID != nil && appointment.Status.IsActive() {
			// Активные записи целевого мастера на целевую дату с блокировкой (FOR UPDATE)
			dayAppointments, err := uc.apptRepo.GetByStaffAndDate(txCtx, *targetStaffID, req.NewDate)
			if err != nil {
				uc.logger.Error("RescheduleAppointment: failed to get appointments for staff=%d: %v", *targetStaffID, err)
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			if conflict := domain.FindOverlap(dayAppointments, req.NewStartTime, newEndTime, appointment.ID); conflict != nil {
				uc.logger.Warn("RescheduleAppointment: interval %s-%s conflicts with appointment id=%d",
					req.NewStartTime, newEndTime, conflict.ID)
				return ErrTimeConflict
			}
		}

		// 5.2. Переносим запись
		if err := uc.apptRepo.Reschedule(txCtx, req.AppointmentID, req.NewDate, req.NewStartTime, newEndTime, targetStaffID); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to reschedule id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Возвращаем обновлённую запись
	updated, err := uc.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to re-fetch id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to re-fetch appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleAppointment: appointment id=%d moved to %s %s-%s",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.StartTime, updated.EndTime)
	return newResponse(updated), nil
}
