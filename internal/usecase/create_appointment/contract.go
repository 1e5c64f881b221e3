package create_appointment

import (
	"context"
	"time"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/internal/integrations/clientdirectory"
	"github.com/bobylov03/salon/internal/integrations/servicecatalog"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Appointment, error)
}

// StaffDirectoryClient интерфейс клиента справочника мастеров
type StaffDirectoryClient interface {
	GetStaffMember(ctx context.Context, staffID int64) (*staffdirectory.StaffMember, error)
}

// ServiceCatalogClient интерфейс клиента каталога услуг
type ServiceCatalogClient interface {
	GetServices(ctx context.Context, serviceIDs []int64) ([]*servicecatalog.Service, error)
}

// ClientDirectoryClient интерфейс клиента справочника клиентов
type ClientDirectoryClient interface {
	GetClient(ctx context.Context, clientID int64) (*clientdirectory.Client, error)
}

// IdempotencyStore интерфейс хранилища ключей идемпотентности
// Позволяет безопасно повторять запрос после неоднозначного сбоя
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Complete(ctx context.Context, key string, appointmentID int64) error
	Release(ctx context.Context, key string) error
	Result(ctx context.Context, key string) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
