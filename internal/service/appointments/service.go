package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
	apptRepo "github.com/bobylov03/salon/internal/infra/storage/appointment"
	"github.com/bobylov03/salon/internal/integrations/servicecatalog"
	"github.com/bobylov03/salon/internal/service/appointments/models"
)

// Service сервис для работы с записями клиентов
type Service struct {
	apptRepo      AppointmentRepository
	catalogClient ServiceCatalogClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	catalogClient ServiceCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:      apptRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// List получает записи с гибкой фильтрацией
// Отменённые записи и неявки по умолчанию скрыты, если не задан фильтр
// по статусу и не включён includeInactive
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, staff=%v, client=%v, status=%v, includeInactive=%v",
		req.StaffID, req.ClientID, req.Status, req.IncludeInactive)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		s.logger.Warn("List: end date before start date")
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}

	appointments, err := s.apptRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus переводит запись в новый статус по таблице переходов
// Перевод в cancelled дополнительно сохраняет причину отмены
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if newStatus == domain.StatusCancelled && req.CancellationReason != nil &&
		len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("UpdateStatus: cancellation reason too long for appointment id=%d", id)
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем допустимость перехода
	if !appt.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d", appt.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if newStatus == domain.StatusCancelled {
		reason := ""
		if req.CancellationReason != nil {
			reason = *req.CancellationReason
		}
		err = s.apptRepo.Cancel(ctx, id, newStatus, reason)
	} else {
		err = s.apptRepo.UpdateStatus(ctx, id, newStatus)
	}
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-fetch appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// UpdateServices заменяет состав услуг записи
// Время окончания пересчитывается по суммарной длительности нового состава,
// удлинение записи проверяется на пересечения с соседними записями
func (s *Service) UpdateServices(ctx context.Context, id int64, req *models.UpdateServicesRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateServices: updating services for appointment id=%d, count=%d", id, len(req.ServiceIDs))

	if len(req.ServiceIDs) == 0 {
		s.logger.Warn("UpdateServices: empty service list for appointment id=%d", id)
		return nil, fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerAppointment {
		s.logger.Warn("UpdateServices: too many services for appointment id=%d", id)
		return nil, fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateServices: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateServices: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateServices - repository error: %v", ErrInternal, err)
	}

	if appt.Status.IsTerminal() {
		s.logger.Warn("UpdateServices: appointment id=%d is in terminal status %s", id, appt.Status)
		return nil, fmt.Errorf("%w: appointment in status %s cannot be edited", ErrInvalidTransition, appt.Status)
	}

	selections, err := s.resolveServices(ctx, req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	appt.Services = selections
	if err := appt.RecomputeEndTime(); err != nil {
		s.logger.Warn("UpdateServices: new duration pushes appointment id=%d past midnight", id)
		return nil, fmt.Errorf("%w: total duration does not fit into the day", ErrInvalidInput)
	}

	// Замена услуг и проверка пересечений выполняются в одной транзакции
	txErr := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if appt.StaffID != nil {
			dayAppointments, err := s.apptRepo.GetByStaffAndDate(txCtx, *appt.StaffID, appt.Date)
			if err != nil {
				return fmt.Errorf("%w: UpdateServices - repository error: %v", ErrInternal, err)
			}
			if conflict := domain.FindOverlap(dayAppointments, appt.StartTime, appt.EndTime, appt.ID); conflict != nil {
				s.logger.Warn("UpdateServices: appointment id=%d conflicts with id=%d", id, conflict.ID)
				return ErrTimeConflict
			}
		}

		return s.apptRepo.ReplaceServices(txCtx, id, selections, appt.EndTime)
	})
	if txErr != nil {
		if errors.Is(txErr, ErrTimeConflict) {
			return nil, ErrTimeConflict
		}
		s.logger.Error("UpdateServices: transaction failed for appointment id=%d: %v", id, txErr)
		return nil, fmt.Errorf("%w: UpdateServices - transaction error: %v", ErrInternal, txErr)
	}

	updated, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateServices: failed to re-fetch appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServices: appointment id=%d updated, end time=%s", id, updated.EndTime)
	return models.FromDomainAppointment(updated), nil
}

// Delete удаляет запись безвозвратно
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	if err := s.apptRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

// resolveServices загружает услуги из каталога и собирает снимок состава записи
func (s *Service) resolveServices(ctx context.Context, serviceIDs []int64) ([]domain.ServiceSelection, error) {
	services, err := s.catalogClient.GetServices(ctx, serviceIDs)
	if err != nil {
		if errors.Is(err, servicecatalog.ErrServiceNotFound) {
			s.logger.Warn("resolveServices: one of services %v not found", serviceIDs)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("resolveServices: service catalog error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	selections := make([]domain.ServiceSelection, 0, len(services))
	for _, svc := range services {
		if !svc.IsActive {
			s.logger.Warn("resolveServices: service id=%d is inactive", svc.ID)
			return nil, ErrServiceNotFound
		}
		selections = append(selections, domain.ServiceSelection{
			ServiceID:       svc.ID,
			Title:           svc.Title,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	return selections, nil
}
