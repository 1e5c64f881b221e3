package compute_metrics

import (
	"context"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
)

// UseCase use case для вычисления сводки показателей по записям
type UseCase struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(apptRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// Execute выполняет use case вычисления сводки
// Сводка каждый раз пересчитывается по снимку хранилища на момент вызова
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeMetrics: start=%v, end=%v, staff=%v, status=%v",
		req.StartDate, req.EndDate, req.StaffID, req.Status)

	// 1. Собираем фильтр
	filter := domain.AppointmentsFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StaffID:   req.StaffID,
		// Отменённые записи и неявки входят в сводку, у них есть свои счётчики
		IncludeInactive: true,
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			uc.logger.Warn("ComputeMetrics: invalid status filter %q", *req.Status)
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		uc.logger.Warn("ComputeMetrics: end date before start date")
		return nil, fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}

	// 2. Выборка записей
	appointments, err := uc.apptRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ComputeMetrics: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 3. Агрегация
	summary := aggregate(appointments)

	uc.logger.Info("ComputeMetrics: %d appointments, revenue=%.2f, utilization=%.1f%%",
		summary.Total, summary.Revenue, summary.UtilizationRate)
	return newResponse(summary), nil
}
