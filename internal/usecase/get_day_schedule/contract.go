package get_day_schedule

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
	GetByStaffAndDay(ctx context.Context, staffID int64, dayOfWeek int) (*domain.WorkingHoursRule, error)
}

// StaffDirectoryClient интерфейс клиента справочника мастеров
type StaffDirectoryClient interface {
	GetStaffMember(ctx context.Context, staffID int64) (*staffdirectory.StaffMember, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
