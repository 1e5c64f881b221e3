package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/bobylov03/salon/internal/domain"
	idemStore "github.com/bobylov03/salon/internal/infra/idempotency"
	clientDir "github.com/bobylov03/salon/internal/integrations/clientdirectory"
	catalogClient "github.com/bobylov03/salon/internal/integrations/servicecatalog"
	staffDir "github.com/bobylov03/salon/internal/integrations/staffdirectory"
)

// UseCase use case для создания записи клиента
type UseCase struct {
	apptRepo      AppointmentRepository
	staffClient   StaffDirectoryClient
	catalogClient ServiceCatalogClient
	clientClient  ClientDirectoryClient
	idemStore     IdempotencyStore // nil, когда идемпотентность выключена
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	staffClient StaffDirectoryClient,
	catalogClient ServiceCatalogClient,
	clientClient ClientDirectoryClient,
	idemStore IdempotencyStore,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		staffClient:   staffClient,
		catalogClient: catalogClient,
		clientClient:  clientClient,
		idemStore:     idemStore,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли один интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, staff=%v, date=%s, time=%s, services=%v",
		req.ClientID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	status, err := resolveInitialStatus(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid initial status: %v", err)
		return nil, err
	}

	// 2. Резервируем ключ идемпотентности
	// Повтор запроса с тем же ключом возвращает ранее созданную запись
	reserved := false
	if uc.idemStore != nil && req.IdempotencyKey != nil && *req.IdempotencyKey != "" {
		replay, owned, err := uc.reserveKey(ctx, *req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
		reserved = owned
	}

	result, err := uc.create(ctx, req, status)
	if err != nil {
		if reserved {
			// Освобождаем ключ, чтобы клиент мог повторить запрос
			if relErr := uc.idemStore.Release(ctx, *req.IdempotencyKey); relErr != nil {
				uc.logger.Warn("CreateAppointment: failed to release idempotency key: %v", relErr)
			}
		}
		return nil, err
	}

	if reserved {
		if err := uc.idemStore.Complete(ctx, *req.IdempotencyKey, result.ID); err != nil {
			uc.logger.Warn("CreateAppointment: failed to store idempotency result for id=%d: %v", result.ID, err)
		}
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)
	return newResponse(result), nil
}

// reserveKey резервирует ключ идемпотентности
// Возвращает ранее созданную запись, если ключ уже использован, и признак
// того, что ключ зарезервирован именно этим запросом: завершать и
// освобождать ключ вправе только его владелец
func (uc *UseCase) reserveKey(ctx context.Context, key string) (*Response, bool, error) {
	ok, err := uc.idemStore.Reserve(ctx, key)
	if err != nil {
		// Недоступность хранилища ключей не блокирует создание записи
		uc.logger.Warn("CreateAppointment: idempotency store unavailable, proceeding without key: %v", err)
		return nil, false, nil
	}
	if ok {
		return nil, true, nil
	}

	// Ключ занят другим запросом: без его результата продолжать нельзя
	appointmentID, err := uc.idemStore.Result(ctx, key)
	if err != nil {
		if errors.Is(err, idemStore.ErrInFlight) {
			uc.logger.Warn("CreateAppointment: request with key=%s already in flight", key)
			return nil, false, ErrDuplicateRequest
		}
		uc.logger.Warn("CreateAppointment: failed to read result for held key=%s: %v", key, err)
		return nil, false, ErrDuplicateRequest
	}

	appt, err := uc.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to replay appointment id=%d for key=%s: %v", appointmentID, key, err)
		return nil, false, fmt.Errorf("%w: failed to replay appointment: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: replaying appointment id=%d for key=%s", appointmentID, key)
	return newResponse(appt), false, nil
}

// create выполняет проверки внешних справочников и вставку записи
func (uc *UseCase) create(ctx context.Context, req *Request, status domain.AppointmentStatus) (*domain.Appointment, error) {
	// 3. Проверяем существование клиента
	if _, err := uc.clientClient.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientDir.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: client directory error for id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: client directory: %v", ErrDependencyUnavailable, err)
	}

	// 4. Проверяем существование мастера, если он назначен
	if req.StaffID != nil {
		staff, err := uc.staffClient.GetStaffMember(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffDir.ErrStaffNotFound) {
				uc.logger.Warn("CreateAppointment: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateAppointment: staff directory error for id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: staff directory: %v", ErrDependencyUnavailable, err)
		}
		if !staff.IsActive {
			uc.logger.Warn("CreateAppointment: staff id=%d is inactive", *req.StaffID)
			return nil, ErrStaffNotFound
		}
	}

	// 5. Загружаем услуги из каталога и фиксируем снимок цен и длительностей
	services, err := uc.catalogClient.GetServices(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: one of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: service catalog error: %v", err)
		return nil, fmt.Errorf("%w: service catalog: %v", ErrDependencyUnavailable, err)
	}

	selections := make([]domain.ServiceSelection, 0, len(services))
	for _, svc := range services {
		if !svc.IsActive {
			uc.logger.Warn("CreateAppointment: service id=%d is inactive", svc.ID)
			return nil, ErrServiceNotFound
		}
		selections = append(selections, domain.ServiceSelection{
			ServiceID:       svc.ID,
			Title:           svc.Title,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	// 6. Собираем запись, время окончания выводится из суммарной длительности
	appointment := &domain.Appointment{
		ClientID:  req.ClientID,
		StaffID:   req.StaffID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Status:    status,
		Services:  selections,
	}
	if err := appointment.RecomputeEndTime(); err != nil {
		uc.logger.Warn("CreateAppointment: total duration pushes appointment past midnight")
		return nil, fmt.Errorf("%w: total duration does not fit into the day", ErrInvalidInput)
	}

	var result *domain.Appointment

	// 7. Проверка пересечений и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Записи без назначенного мастера не участвуют в проверке пересечений
		if appointment.StaffID != nil && appointment.Status.IsActive() {
			// Активные записи мастера на эту дату с блокировкой (FOR UPDATE)
			dayAppointments, err := uc.apptRepo.GetByStaffAndDate(txCtx, *appointment.StaffID, appointment.Date)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to get appointments for staff=%d: %v", *appointment.StaffID, err)
				return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
			}

			if conflict := domain.FindOverlap(dayAppointments, appointment.StartTime, appointment.EndTime, 0); conflict != nil {
				uc.logger.Warn("CreateAppointment: interval %s-%s conflicts with appointment id=%d",
					appointment.StartTime, appointment.EndTime, conflict.ID)
				return ErrTimeConflict
			}
		}

		// 7.2. Сохраняем запись вместе с составом услуг
		created, err := uc.apptRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
