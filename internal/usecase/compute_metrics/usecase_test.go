package compute_metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylov03/salon/internal/domain"
	"github.com/bobylov03/salon/pkg/ptr"
)

type fakeApptRepo struct {
	appointments []*domain.Appointment
	lastFilter   domain.AppointmentsFilter
}

func (r *fakeApptRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	return r.appointments, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute_Summary(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	repo := &fakeApptRepo{appointments: []*domain.Appointment{
		metricsAppointment(day, domain.StatusCompleted, 1500, 60),
		metricsAppointment(day, domain.StatusCancelled, 700, 30),
	}}
	uc := NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1500.0, resp.Revenue)
	assert.Equal(t, 1, resp.ByStatus["completed"])
	assert.Equal(t, 1, resp.ByStatus["cancelled"])
	// В сводку входят и неактивные записи
	assert.True(t, repo.lastFilter.IncludeInactive)
}

func TestUseCase_Execute_StatusFilter(t *testing.T) {
	repo := &fakeApptRepo{}
	uc := NewUseCase(repo, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Status: ptr.Ptr("completed")})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusCompleted, *repo.lastFilter.Status)

	_, err = uc.Execute(context.Background(), &Request{Status: ptr.Ptr("bogus")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_InvalidPeriod(t *testing.T) {
	uc := NewUseCase(&fakeApptRepo{}, noopLogger{})

	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
