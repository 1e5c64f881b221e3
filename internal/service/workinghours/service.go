package workinghours

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
	whRepo "github.com/bobylov03/salon/internal/infra/storage/workinghours"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
	"github.com/bobylov03/salon/internal/service/workinghours/models"
	"github.com/bobylov03/salon/pkg/types"
)

// Service сервис управления графиками работы мастеров
type Service struct {
	ruleRepo    WorkingHoursRepository
	staffClient StaffDirectoryClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса графиков
func NewService(
	ruleRepo WorkingHoursRepository,
	staffClient StaffDirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:    ruleRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// GetByStaff возвращает недельный график мастера
func (s *Service) GetByStaff(ctx context.Context, staffID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetByStaff: fetching working hours for staff=%d", staffID)

	rules, err := s.ruleRepo.GetByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("GetByStaff: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetByStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByStaff: fetched %d rules for staff=%d", len(rules), staffID)
	return models.FromDomainRules(staffID, rules), nil
}

// Set устанавливает рабочие часы мастера на день недели
// Повторный вызов для той же пары (staff, day) перезаписывает правило
func (s *Service) Set(ctx context.Context, staffID int64, dayOfWeek int, req *models.SetWorkingHoursRequest) (*models.WorkingHoursRuleResponse, error) {
	s.logger.Info("Set: setting working hours staff=%d day=%d %s-%s", staffID, dayOfWeek, req.StartTime, req.EndTime)

	rule, err := s.buildRule(staffID, dayOfWeek, req)
	if err != nil {
		s.logger.Warn("Set: validation failed for staff=%d day=%d: %v", staffID, dayOfWeek, err)
		return nil, err
	}

	// Проверяем существование мастера в справочнике
	if err := s.checkStaffExists(ctx, staffID); err != nil {
		return nil, err
	}

	saved, err := s.ruleRepo.Upsert(ctx, rule)
	if err != nil {
		s.logger.Error("Set: repository error for staff=%d day=%d: %v", staffID, dayOfWeek, err)
		return nil, fmt.Errorf("%w: Set - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Set: saved rule id=%d for staff=%d day=%d", saved.ID, staffID, dayOfWeek)
	return models.FromDomainRule(saved), nil
}

// Clear удаляет рабочие часы мастера на день недели (делает день выходным)
func (s *Service) Clear(ctx context.Context, staffID int64, dayOfWeek int) error {
	s.logger.Info("Clear: clearing working hours staff=%d day=%d", staffID, dayOfWeek)

	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		s.logger.Warn("Clear: invalid day of week %d for staff=%d", dayOfWeek, staffID)
		return fmt.Errorf("%w: day of week must be between %d and %d", ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if err := s.ruleRepo.Delete(ctx, staffID, dayOfWeek); err != nil {
		if errors.Is(err, whRepo.ErrRuleNotFound) {
			s.logger.Warn("Clear: rule not found for staff=%d day=%d", staffID, dayOfWeek)
			return ErrRuleNotFound
		}
		s.logger.Error("Clear: repository error for staff=%d day=%d: %v", staffID, dayOfWeek, err)
		return fmt.Errorf("%w: Clear - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Clear: cleared working hours staff=%d day=%d", staffID, dayOfWeek)
	return nil
}

// buildRule валидирует запрос и собирает domain модель правила
func (s *Service) buildRule(staffID int64, dayOfWeek int, req *models.SetWorkingHoursRequest) (*domain.WorkingHoursRule, error) {
	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		return nil, fmt.Errorf("%w: day of week must be between %d and %d", ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, req.EndTime)
	}

	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	shift := end.Minutes() - start.Minutes()
	if shift < domain.MinShiftMinutes {
		return nil, fmt.Errorf("%w: shift must be at least %d minutes", ErrInvalidInput, domain.MinShiftMinutes)
	}
	if shift > domain.MaxShiftMinutes {
		return nil, fmt.Errorf("%w: shift must be at most %d minutes", ErrInvalidInput, domain.MaxShiftMinutes)
	}

	return &domain.WorkingHoursRule{
		StaffID:   staffID,
		DayOfWeek: dayOfWeek,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// checkStaffExists проверяет существование мастера в справочнике
func (s *Service) checkStaffExists(ctx context.Context, staffID int64) error {
	staff, err := s.staffClient.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrStaffNotFound) {
			s.logger.Warn("checkStaffExists: staff=%d not found", staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("checkStaffExists: staff directory error for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	if !staff.IsActive {
		s.logger.Warn("checkStaffExists: staff=%d is inactive", staffID)
		return ErrStaffNotFound
	}

	return nil
}
