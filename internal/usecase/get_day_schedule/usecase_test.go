package get_day_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylov03/salon/internal/domain"
	whRepo "github.com/bobylov03/salon/internal/infra/storage/workinghours"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
)

type fakeApptRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (r *fakeApptRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return r.appointments, r.err
}

type fakeWHRepo struct {
	rule *domain.WorkingHoursRule
	err  error
}

func (r *fakeWHRepo) GetByStaffAndDay(_ context.Context, _ int64, _ int) (*domain.WorkingHoursRule, error) {
	return r.rule, r.err
}

type fakeStaffClient struct {
	staff *staffdirectory.StaffMember
	err   error
}

func (c *fakeStaffClient) GetStaffMember(_ context.Context, _ int64) (*staffdirectory.StaffMember, error) {
	return c.staff, c.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mondayRule(staffID int64) *domain.WorkingHoursRule {
	return &domain.WorkingHoursRule{
		ID:        1,
		StaffID:   staffID,
		DayOfWeek: 0,
		StartTime: "09:00",
		EndTime:   "18:00",
	}
}

func newTestUseCase(apptRepo *fakeApptRepo, whRepo *fakeWHRepo, staff *fakeStaffClient, now time.Time) *UseCase {
	uc := NewUseCase(apptRepo, whRepo, staff, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestUseCase_Execute_EmptyWorkDay(t *testing.T) {
	// Понедельник 09:00-18:00, записей нет
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	staff := &staffdirectory.StaffMember{ID: 7, FirstName: "Анна", LastName: "Иванова", IsActive: true}
	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeWHRepo{rule: mondayRule(7)},
		&fakeStaffClient{staff: staff},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.IsWorkDay)
	require.NotNil(t, resp.StaffName)
	assert.Equal(t, staff.FullName(), *resp.StaffName)
	require.NotNil(t, resp.WorkStart)
	assert.Equal(t, "09:00", *resp.WorkStart)
	require.NotNil(t, resp.WorkEnd)
	assert.Equal(t, "18:00", *resp.WorkEnd)

	// 9 часов с шагом 30 минут
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, "09:00", resp.Slots[0].Time)
	assert.Equal(t, "17:30", resp.Slots[17].Time)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable, "slot %s", slot.Time)
		assert.Empty(t, slot.Appointments)
	}

	// Сейчас 12:00: слоты до полудня прошли, остальные нет
	assert.True(t, resp.Slots[0].IsPast)
	assert.True(t, resp.Slots[5].IsPast)  // 11:30
	assert.False(t, resp.Slots[6].IsPast) // 12:00
	assert.False(t, resp.Slots[17].IsPast)

	assert.Empty(t, resp.Appointments)
}

func TestUseCase_Execute_OccupiedSlots(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	appt := &domain.Appointment{
		ID:        42,
		ClientID:  3,
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.StatusConfirmed,
	}
	uc := newTestUseCase(
		&fakeApptRepo{appointments: []*domain.Appointment{appt}},
		&fakeWHRepo{rule: mondayRule(7)},
		&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7}},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)

	bySlot := make(map[string]Slot, len(resp.Slots))
	for _, slot := range resp.Slots {
		bySlot[slot.Time] = slot
	}

	// Интервал [10:00, 11:00): занята начальная граница, конечная свободна
	assert.False(t, bySlot["10:00"].IsAvailable)
	assert.False(t, bySlot["10:30"].IsAvailable)
	assert.True(t, bySlot["11:00"].IsAvailable)
	assert.True(t, bySlot["09:30"].IsAvailable)

	require.Len(t, bySlot["10:00"].Appointments, 1)
	assert.Equal(t, int64(42), bySlot["10:00"].Appointments[0].ID)

	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(42), resp.Appointments[0].ID)
}

func TestUseCase_Execute_DayOff(t *testing.T) {
	date := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	// Записи в хранилище есть, но правила на этот день нет
	appt := &domain.Appointment{ID: 1, ClientID: 2, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed}
	uc := newTestUseCase(
		&fakeApptRepo{appointments: []*domain.Appointment{appt}},
		&fakeWHRepo{err: whRepo.ErrRuleNotFound},
		&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7}},
		time.Now(),
	)

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)

	assert.False(t, resp.IsWorkDay)
	assert.Nil(t, resp.WorkStart)
	assert.Nil(t, resp.WorkEnd)
	assert.Empty(t, resp.Slots)
	assert.Empty(t, resp.Appointments)
}

func TestUseCase_Execute_StaffNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeWHRepo{rule: mondayRule(7)},
		&fakeStaffClient{err: staffdirectory.ErrStaffNotFound},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{
		StaffID: 7,
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestUseCase_Execute_StaffDirectoryDegradation(t *testing.T) {
	// Справочник недоступен: ответ без имени мастера, расписание строится
	uc := newTestUseCase(
		&fakeApptRepo{},
		&fakeWHRepo{rule: mondayRule(7)},
		&fakeStaffClient{err: errors.New("connection refused")},
		time.Now(),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID: 7,
		Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.StaffName)
	assert.True(t, resp.IsWorkDay)
}

func TestUseCase_Execute_IsPastIgnoresServerZone(t *testing.T) {
	// Один и тот же момент в другой зоне сервера не меняет флаги is_past
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	utcNow := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	shiftedNow := utcNow.In(time.FixedZone("UTC+5", 5*3600))

	newUC := func(now time.Time) *UseCase {
		return newTestUseCase(
			&fakeApptRepo{},
			&fakeWHRepo{rule: mondayRule(7)},
			&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7}},
			now,
		)
	}

	utcResp, err := newUC(utcNow).Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)
	shiftedResp, err := newUC(shiftedNow).Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)

	require.Len(t, shiftedResp.Slots, len(utcResp.Slots))
	for i := range utcResp.Slots {
		assert.Equal(t, utcResp.Slots[i].IsPast, shiftedResp.Slots[i].IsPast, "slot %s", utcResp.Slots[i].Time)
	}

	// Сейчас 09:30 UTC: утренний слот прошёл, полуденный ещё нет
	bySlot := make(map[string]Slot, len(shiftedResp.Slots))
	for _, slot := range shiftedResp.Slots {
		bySlot[slot.Time] = slot
	}
	assert.True(t, bySlot["09:00"].IsPast)
	assert.False(t, bySlot["12:00"].IsPast)
}

func TestUseCase_Execute_Deterministic(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		{ID: 1, ClientID: 2, StartTime: "09:00", EndTime: "10:30", Status: domain.StatusConfirmed},
		{ID: 2, ClientID: 3, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusPending},
	}
	uc := newTestUseCase(
		&fakeApptRepo{appointments: appointments},
		&fakeWHRepo{rule: mondayRule(7)},
		&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7}},
		now,
	)

	first, err := uc.Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{StaffID: 7, Date: date})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeWHRepo{}, &fakeStaffClient{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{StaffID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StaffID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
