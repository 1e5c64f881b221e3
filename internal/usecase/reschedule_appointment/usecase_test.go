package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylov03/salon/internal/domain"
	apptRepo "github.com/bobylov03/salon/internal/infra/storage/appointment"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
	"github.com/bobylov03/salon/pkg/ptr"
	"github.com/bobylov03/salon/pkg/types"
)

type rescheduleCall struct {
	id        int64
	date      time.Time
	startTime types.TimeString
	endTime   types.TimeString
	staffID   *int64
}

type fakeApptRepo struct {
	appointment *domain.Appointment
	existing    []*domain.Appointment
	getErr      error
	calls       []rescheduleCall
}

func (r *fakeApptRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	appt := *r.appointment
	return &appt, nil
}

func (r *fakeApptRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return r.existing, nil
}

func (r *fakeApptRepo) Reschedule(_ context.Context, id int64, date time.Time, startTime, endTime types.TimeString, staffID *int64) error {
	r.calls = append(r.calls, rescheduleCall{id: id, date: date, startTime: startTime, endTime: endTime, staffID: staffID})
	r.appointment.Date = date
	r.appointment.StartTime = startTime
	r.appointment.EndTime = endTime
	r.appointment.StaffID = staffID
	return nil
}

type fakeStaffClient struct {
	staff *staffdirectory.StaffMember
	err   error
}

func (c *fakeStaffClient) GetStaffMember(_ context.Context, _ int64) (*staffdirectory.StaffMember, error) {
	return c.staff, c.err
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func storedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:        42,
		ClientID:  3,
		StaffID:   ptr.Ptr(int64(7)),
		Date:      time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:30",
		Status:    domain.StatusConfirmed,
		Services: []domain.ServiceSelection{
			{ServiceID: 1, Title: "Стрижка", Price: 1500, DurationMinutes: 90},
		},
	}
}

func newTestUseCase(repo *fakeApptRepo) *UseCase {
	return NewUseCase(repo,
		&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 8, IsActive: true}},
		&fakeTxManager{}, noopLogger{})
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment()}
	uc := newTestUseCase(repo)

	newDate := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewDate:       newDate,
		NewStartTime:  "14:00",
	})
	require.NoError(t, err)

	require.Len(t, repo.calls, 1)
	call := repo.calls[0]
	assert.Equal(t, int64(42), call.id)
	// Длительность состава услуг сохраняется при переносе
	assert.Equal(t, types.TimeString("14:00"), call.startTime)
	assert.Equal(t, types.TimeString("15:30"), call.endTime)
	// Мастер не менялся
	require.NotNil(t, call.staffID)
	assert.Equal(t, int64(7), *call.staffID)

	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, types.TimeString("15:30"), resp.EndTime)
}

func TestUseCase_Execute_ChangeStaff(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment()}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewDate:       time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		NewStartTime:  "14:00",
		NewStaffID:    ptr.Ptr(int64(8)),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.StaffID)
	assert.Equal(t, int64(8), *resp.StaffID)
}

func TestUseCase_Execute_ConflictLeavesAppointmentUnchanged(t *testing.T) {
	repo := &fakeApptRepo{
		appointment: storedAppointment(),
		existing: []*domain.Appointment{
			{ID: 99, ClientID: 5, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewDate:       time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		NewStartTime:  "14:30",
	})
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Empty(t, repo.calls)
}

func TestUseCase_Execute_SelfOverlapIgnored(t *testing.T) {
	// Сдвиг на полчаса внутри собственного интервала не конфликтует сам с собой
	appt := storedAppointment()
	repo := &fakeApptRepo{
		appointment: appt,
		existing:    []*domain.Appointment{appt},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewDate:       appt.Date,
		NewStartTime:  "10:30",
	})
	assert.NoError(t, err)
	require.Len(t, repo.calls, 1)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	repo := &fakeApptRepo{getErr: apptRepo.ErrAppointmentNotFound}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewDate:       time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		NewStartTime:  "14:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestUseCase_Execute_StaffNotFound(t *testing.T) {
	repo := &fakeApptRepo{appointment: storedAppointment()}
	uc := NewUseCase(repo,
		&fakeStaffClient{err: staffdirectory.ErrStaffNotFound},
		&fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: 42,
		NewDate:       time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		NewStartTime:  "14:00",
		NewStaffID:    ptr.Ptr(int64(8)),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
	assert.Empty(t, repo.calls)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{appointment: storedAppointment()})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero id", req: &Request{NewDate: time.Now(), NewStartTime: "10:00"}},
		{name: "zero date", req: &Request{AppointmentID: 42, NewStartTime: "10:00"}},
		{name: "empty time", req: &Request{AppointmentID: 42, NewDate: time.Now()}},
		{name: "malformed time", req: &Request{AppointmentID: 42, NewDate: time.Now(), NewStartTime: "9:0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
