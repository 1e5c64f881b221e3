package get_week_schedule

import (
	"context"
	"time"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
}

// WorkingHoursRepository интерфейс репозитория графиков работы
type WorkingHoursRepository interface {
	GetByStaff(ctx context.Context, staffID int64) ([]*domain.WorkingHoursRule, error)
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
