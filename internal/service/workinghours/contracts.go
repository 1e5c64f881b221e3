package workinghours

import (
	"context"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
)

// WorkingHoursRepository интерфейс репозитория графиков работы
type WorkingHoursRepository interface {
	GetByStaff(ctx context.Context, staffID int64) ([]*domain.WorkingHoursRule, error)
	GetByStaffAndDay(ctx context.Context, staffID int64, dayOfWeek int) (*domain.WorkingHoursRule, error)
	Upsert(ctx context.Context, rule *domain.WorkingHoursRule) (*domain.WorkingHoursRule, error)
	Delete(ctx context.Context, staffID int64, dayOfWeek int) error
}

// StaffDirectoryClient интерфейс клиента справочника мастеров
type StaffDirectoryClient interface {
	GetStaffMember(ctx context.Context, staffID int64) (*staffdirectory.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
