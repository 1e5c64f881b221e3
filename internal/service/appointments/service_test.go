package appointments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylov03/salon/internal/domain"
	apptRepo "github.com/bobylov03/salon/internal/infra/storage/appointment"
	"github.com/bobylov03/salon/internal/integrations/servicecatalog"
	"github.com/bobylov03/salon/internal/service/appointments/models"
	"github.com/bobylov03/salon/pkg/ptr"
	"github.com/bobylov03/salon/pkg/types"
)

type fakeApptRepo struct {
	appointment *domain.Appointment
	listed      []*domain.Appointment
	dayAppts    []*domain.Appointment
	getErr      error

	statusCalls  []domain.AppointmentStatus
	cancelReason *string
	replaced     []domain.ServiceSelection
	replacedEnd  types.TimeString
	deleted      []int64
	deleteErr    error
}

func (r *fakeApptRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	appt := *r.appointment
	return &appt, nil
}

func (r *fakeApptRepo) ListWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return r.listed, nil
}

func (r *fakeApptRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return r.dayAppts, nil
}

func (r *fakeApptRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	r.statusCalls = append(r.statusCalls, status)
	r.appointment.Status = status
	return nil
}

func (r *fakeApptRepo) Cancel(_ context.Context, _ int64, status domain.AppointmentStatus, reason string) error {
	r.statusCalls = append(r.statusCalls, status)
	r.cancelReason = &reason
	r.appointment.Status = status
	r.appointment.CancellationReason = &reason
	return nil
}

func (r *fakeApptRepo) ReplaceServices(_ context.Context, _ int64, services []domain.ServiceSelection, endTime types.TimeString) error {
	r.replaced = services
	r.replacedEnd = endTime
	r.appointment.Services = services
	r.appointment.EndTime = endTime
	return nil
}

func (r *fakeApptRepo) Delete(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeCatalogClient struct {
	services []*servicecatalog.Service
	err      error
}

func (c *fakeCatalogClient) GetServices(_ context.Context, _ []int64) ([]*servicecatalog.Service, error) {
	return c.services, c.err
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func storedAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:        42,
		ClientID:  3,
		StaffID:   ptr.Ptr(int64(7)),
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    status,
		Services: []domain.ServiceSelection{
			{ServiceID: 1, Title: "Стрижка", Price: 1500, DurationMinutes: 60},
		},
	}
}

func newTestService(repo *fakeApptRepo, catalog *fakeCatalogClient) *Service {
	return NewService(repo, catalog, &fakeTxManager{}, noopLogger{})
}

func TestService_UpdateStatus_AllowedTransition(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusPending)}
	svc := newTestService(repo, &fakeCatalogClient{})

	resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, repo.statusCalls)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusCompleted)}
	svc := newTestService(repo, &fakeCatalogClient{})

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	// Хранилище не трогается
	assert.Empty(t, repo.statusCalls)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusPending)}
	svc := newTestService(repo, &fakeCatalogClient{})

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_CancelStoresReason(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusConfirmed)}
	svc := newTestService(repo, &fakeCatalogClient{})

	resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		Status:             "cancelled",
		CancellationReason: ptr.Ptr("клиент попросил"),
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, repo.cancelReason)
	assert.Equal(t, "клиент попросил", *repo.cancelReason)
}

func TestService_UpdateStatus_ReasonTooLong(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusConfirmed)}
	svc := newTestService(repo, &fakeCatalogClient{})

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{
		Status:             "cancelled",
		CancellationReason: ptr.Ptr(strings.Repeat("a", domain.MaxCancellationReasonLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	repo := &fakeApptRepo{getErr: apptRepo.ErrAppointmentNotFound}
	svc := newTestService(repo, &fakeCatalogClient{})

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_UpdateServices(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusConfirmed)}
	catalog := &fakeCatalogClient{services: []*servicecatalog.Service{
		{ID: 2, Title: "Окрашивание", Price: 4000, DurationMinutes: 120, IsActive: true},
	}}
	svc := newTestService(repo, catalog)

	resp, err := svc.UpdateServices(context.Background(), 42, &models.UpdateServicesRequest{ServiceIDs: []int64{2}})
	require.NoError(t, err)

	// Время окончания пересчитано по новому составу
	assert.Equal(t, "12:00", resp.EndTime)
	assert.Equal(t, types.TimeString("12:00"), repo.replacedEnd)
	require.Len(t, repo.replaced, 1)
	assert.Equal(t, int64(2), repo.replaced[0].ServiceID)
}

func TestService_UpdateServices_TerminalStatus(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeApptRepo{appointment: storedAppointment(status)}
			svc := newTestService(repo, &fakeCatalogClient{})

			_, err := svc.UpdateServices(context.Background(), 42, &models.UpdateServicesRequest{ServiceIDs: []int64{2}})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, repo.replaced)
		})
	}
}

func TestService_UpdateServices_Conflict(t *testing.T) {
	repo := &fakeApptRepo{
		appointment: storedAppointment(domain.StatusConfirmed),
		dayAppts: []*domain.Appointment{
			{ID: 99, ClientID: 5, StartTime: "11:30", EndTime: "12:30", Status: domain.StatusConfirmed},
		},
	}
	catalog := &fakeCatalogClient{services: []*servicecatalog.Service{
		{ID: 2, Title: "Окрашивание", Price: 4000, DurationMinutes: 120, IsActive: true},
	}}
	svc := newTestService(repo, catalog)

	// Удлинение до 12:00 наезжает на соседнюю запись
	_, err := svc.UpdateServices(context.Background(), 42, &models.UpdateServicesRequest{ServiceIDs: []int64{2}})
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Empty(t, repo.replaced)
}

func TestService_UpdateServices_Validation(t *testing.T) {
	svc := newTestService(&fakeApptRepo{appointment: storedAppointment(domain.StatusConfirmed)}, &fakeCatalogClient{})

	_, err := svc.UpdateServices(context.Background(), 42, &models.UpdateServicesRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateServices_ServiceNotFound(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment(domain.StatusConfirmed)}
	svc := newTestService(repo, &fakeCatalogClient{err: servicecatalog.ErrServiceNotFound})

	_, err := svc.UpdateServices(context.Background(), 42, &models.UpdateServicesRequest{ServiceIDs: []int64{2}})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_List_InvalidPeriod(t *testing.T) {
	svc := newTestService(&fakeApptRepo{}, &fakeCatalogClient{})

	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.List(context.Background(), &models.ListAppointmentsRequest{
		StartDate: &start,
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeApptRepo{}
		svc := newTestService(repo, &fakeCatalogClient{})
		require.NoError(t, svc.Delete(context.Background(), 42))
		assert.Equal(t, []int64{42}, repo.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeApptRepo{deleteErr: apptRepo.ErrAppointmentNotFound}
		svc := newTestService(repo, &fakeCatalogClient{})
		assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrAppointmentNotFound)
	})
}
