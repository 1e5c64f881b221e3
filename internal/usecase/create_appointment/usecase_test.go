package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylov03/salon/internal/domain"
	idemStore "github.com/bobylov03/salon/internal/infra/idempotency"
	"github.com/bobylov03/salon/internal/integrations/clientdirectory"
	"github.com/bobylov03/salon/internal/integrations/servicecatalog"
	"github.com/bobylov03/salon/internal/integrations/staffdirectory"
	"github.com/bobylov03/salon/pkg/ptr"
)

type fakeApptRepo struct {
	existing    []*domain.Appointment
	created     *domain.Appointment
	byID        map[int64]*domain.Appointment
	createCalls int
}

func (r *fakeApptRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	r.createCalls++
	created := *appointment
	created.ID = 100
	r.created = &created
	return &created, nil
}

func (r *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return appt, nil
}

func (r *fakeApptRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return r.existing, nil
}

type fakeStaffClient struct {
	staff *staffdirectory.StaffMember
	err   error
}

func (c *fakeStaffClient) GetStaffMember(_ context.Context, _ int64) (*staffdirectory.StaffMember, error) {
	return c.staff, c.err
}

type fakeCatalogClient struct {
	services []*servicecatalog.Service
	err      error
}

func (c *fakeCatalogClient) GetServices(_ context.Context, _ []int64) ([]*servicecatalog.Service, error) {
	return c.services, c.err
}

type fakeClientClient struct {
	err error
}

func (c *fakeClientClient) GetClient(_ context.Context, clientID int64) (*clientdirectory.Client, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &clientdirectory.Client{ID: clientID, FirstName: "Мария"}, nil
}

type fakeIdemStore struct {
	reserveOK   bool
	reserveErr  error
	resultID    int64
	resultErr   error
	releaseKeys []string
	completed   map[string]int64
}

func (s *fakeIdemStore) Reserve(_ context.Context, _ string) (bool, error) {
	return s.reserveOK, s.reserveErr
}

func (s *fakeIdemStore) Complete(_ context.Context, key string, appointmentID int64) error {
	if s.completed == nil {
		s.completed = map[string]int64{}
	}
	s.completed[key] = appointmentID
	return nil
}

func (s *fakeIdemStore) Release(_ context.Context, key string) error {
	s.releaseKeys = append(s.releaseKeys, key)
	return nil
}

func (s *fakeIdemStore) Result(_ context.Context, _ string) (int64, error) {
	return s.resultID, s.resultErr
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func activeServices() []*servicecatalog.Service {
	return []*servicecatalog.Service{
		{ID: 1, Title: "Стрижка", Price: 1500, DurationMinutes: 60, IsActive: true},
		{ID: 2, Title: "Укладка", Price: 800, DurationMinutes: 30, IsActive: true},
	}
}

func validRequest() *Request {
	return &Request{
		ClientID:   3,
		StaffID:    ptr.Ptr(int64(7)),
		Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		ServiceIDs: []int64{1, 2},
	}
}

func newTestUseCase(repo *fakeApptRepo, catalog *fakeCatalogClient, idem IdempotencyStore) *UseCase {
	return NewUseCase(
		repo,
		&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7, IsActive: true}},
		catalog,
		&fakeClientClient{},
		idem,
		&fakeTxManager{},
		noopLogger{},
	)
}

func TestUseCase_Execute_Success(t *testing.T) {
	repo := &fakeApptRepo{}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	// Время окончания выводится из суммарной длительности услуг
	assert.Equal(t, "11:30", resp.EndTime.String())
	assert.Equal(t, 90, resp.TotalDurationMinutes)
	assert.Equal(t, 2300.0, resp.TotalPrice)
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Стрижка", resp.Services[0].Title)
}

func TestUseCase_Execute_ExplicitStatus(t *testing.T) {
	repo := &fakeApptRepo{}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, nil)

	req := validRequest()
	req.Status = ptr.Ptr("confirmed")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	req.Status = ptr.Ptr("unknown")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_TimeConflict(t *testing.T) {
	repo := &fakeApptRepo{existing: []*domain.Appointment{
		{ID: 5, ClientID: 9, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, nil)

	req := validRequest()
	req.StartTime = "10:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Zero(t, repo.createCalls)
}

func TestUseCase_Execute_TouchingIntervalsAllowed(t *testing.T) {
	repo := &fakeApptRepo{existing: []*domain.Appointment{
		{ID: 5, ClientID: 9, StartTime: "08:30", EndTime: "10:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, nil)

	// Новая запись начинается ровно в момент окончания существующей
	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestUseCase_Execute_NoStaffSkipsOverlapCheck(t *testing.T) {
	repo := &fakeApptRepo{existing: []*domain.Appointment{
		{ID: 5, ClientID: 9, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, nil)

	req := validRequest()
	req.StaffID = nil
	req.StartTime = "10:30"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.StaffID)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{}, &fakeCatalogClient{services: activeServices()}, nil)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero client", mutate: func(req *Request) { req.ClientID = 0 }},
		{name: "negative staff", mutate: func(req *Request) { req.StaffID = ptr.Ptr(int64(-1)) }},
		{name: "zero date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "empty start time", mutate: func(req *Request) { req.StartTime = "" }},
		{name: "malformed start time", mutate: func(req *Request) { req.StartTime = "25:00" }},
		{name: "no services", mutate: func(req *Request) { req.ServiceIDs = nil }},
		{name: "bad service id", mutate: func(req *Request) { req.ServiceIDs = []int64{1, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	t.Run("client", func(t *testing.T) {
		uc := NewUseCase(
			&fakeApptRepo{},
			&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7, IsActive: true}},
			&fakeCatalogClient{services: activeServices()},
			&fakeClientClient{err: clientdirectory.ErrClientNotFound},
			nil, &fakeTxManager{}, noopLogger{},
		)
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrClientNotFound)
	})

	t.Run("staff inactive", func(t *testing.T) {
		uc := NewUseCase(
			&fakeApptRepo{},
			&fakeStaffClient{staff: &staffdirectory.StaffMember{ID: 7, IsActive: false}},
			&fakeCatalogClient{services: activeServices()},
			&fakeClientClient{},
			nil, &fakeTxManager{}, noopLogger{},
		)
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("service missing", func(t *testing.T) {
		uc := newTestUseCase(&fakeApptRepo{},
			&fakeCatalogClient{err: servicecatalog.ErrServiceNotFound}, nil)
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("service inactive", func(t *testing.T) {
		services := activeServices()
		services[1].IsActive = false
		uc := newTestUseCase(&fakeApptRepo{}, &fakeCatalogClient{services: services}, nil)
		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestUseCase_Execute_DependencyUnavailable(t *testing.T) {
	uc := NewUseCase(
		&fakeApptRepo{},
		&fakeStaffClient{err: errors.New("connection refused")},
		&fakeCatalogClient{services: activeServices()},
		&fakeClientClient{},
		nil, &fakeTxManager{}, noopLogger{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestUseCase_Execute_IdempotencyDuplicate(t *testing.T) {
	store := &fakeIdemStore{reserveOK: false, resultErr: idemStore.ErrInFlight}
	repo := &fakeApptRepo{}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, store)

	req := validRequest()
	req.IdempotencyKey = ptr.Ptr("key-1")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.Zero(t, repo.createCalls)
}

func TestUseCase_Execute_IdempotencyReplay(t *testing.T) {
	prior := &domain.Appointment{
		ID:        55,
		ClientID:  3,
		StartTime: "10:00",
		EndTime:   "11:30",
		Status:    domain.StatusPending,
	}
	store := &fakeIdemStore{reserveOK: false, resultID: 55}
	repo := &fakeApptRepo{byID: map[int64]*domain.Appointment{55: prior}}
	uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, store)

	req := validRequest()
	req.IdempotencyKey = ptr.Ptr("key-1")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(55), resp.ID)
	assert.Zero(t, repo.createCalls)
}

func TestUseCase_Execute_IdempotencyLifecycle(t *testing.T) {
	t.Run("complete on success", func(t *testing.T) {
		store := &fakeIdemStore{reserveOK: true}
		repo := &fakeApptRepo{}
		uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, store)

		req := validRequest()
		req.IdempotencyKey = ptr.Ptr("key-1")

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, resp.ID, store.completed["key-1"])
	})

	t.Run("release on failure", func(t *testing.T) {
		store := &fakeIdemStore{reserveOK: true}
		repo := &fakeApptRepo{existing: []*domain.Appointment{
			{ID: 5, ClientID: 9, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
		}}
		uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, store)

		req := validRequest()
		req.StartTime = "10:30"
		req.IdempotencyKey = ptr.Ptr("key-1")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTimeConflict)
		assert.Equal(t, []string{"key-1"}, store.releaseKeys)
	})

	t.Run("held key with unreadable result is not taken over", func(t *testing.T) {
		// Ключ занят чужим запросом, а его результат прочитать не удалось:
		// создавать вторую запись и перепривязывать ключ нельзя
		store := &fakeIdemStore{reserveOK: false, resultErr: errors.New("read timeout")}
		repo := &fakeApptRepo{}
		uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, store)

		req := validRequest()
		req.IdempotencyKey = ptr.Ptr("key-1")

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDuplicateRequest)
		assert.Zero(t, repo.createCalls)
		assert.Empty(t, store.completed)
		assert.Empty(t, store.releaseKeys)
	})

	t.Run("store unavailable does not block", func(t *testing.T) {
		store := &fakeIdemStore{reserveErr: errors.New("redis down")}
		repo := &fakeApptRepo{}
		uc := newTestUseCase(repo, &fakeCatalogClient{services: activeServices()}, store)

		req := validRequest()
		req.IdempotencyKey = ptr.Ptr("key-1")

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.ID)
	})
}
