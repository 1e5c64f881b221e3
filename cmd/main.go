package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createAppointmentHandler "github.com/bobylov03/salon/internal/api/handlers/create_appointment"
	deleteAppointmentHandler "github.com/bobylov03/salon/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/bobylov03/salon/internal/api/handlers/get_appointment"
	getDayScheduleHandler "github.com/bobylov03/salon/internal/api/handlers/get_day_schedule"
	getMetricsSummaryHandler "github.com/bobylov03/salon/internal/api/handlers/get_metrics_summary"
	getWeekScheduleHandler "github.com/bobylov03/salon/internal/api/handlers/get_week_schedule"
	getWorkingHoursHandler "github.com/bobylov03/salon/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/bobylov03/salon/internal/api/handlers/list_appointments"
	rescheduleAppointmentHandler "github.com/bobylov03/salon/internal/api/handlers/reschedule_appointment"
	setWorkingHoursHandler "github.com/bobylov03/salon/internal/api/handlers/set_working_hours"
	updateAppointmentServicesHandler "github.com/bobylov03/salon/internal/api/handlers/update_appointment_services"
	updateAppointmentStatusHandler "github.com/bobylov03/salon/internal/api/handlers/update_appointment_status"
	"github.com/bobylov03/salon/internal/api/middleware"
	"github.com/bobylov03/salon/internal/config"
	"github.com/bobylov03/salon/internal/infra/idempotency"
	appointmentRepo "github.com/bobylov03/salon/internal/infra/storage/appointment"
	workingHoursRepo "github.com/bobylov03/salon/internal/infra/storage/workinghours"
	clientDirectoryClient "github.com/bobylov03/salon/internal/integrations/clientdirectory"
	serviceCatalogClient "github.com/bobylov03/salon/internal/integrations/servicecatalog"
	staffDirectoryClient "github.com/bobylov03/salon/internal/integrations/staffdirectory"
	appointmentsService "github.com/bobylov03/salon/internal/service/appointments"
	workingHoursService "github.com/bobylov03/salon/internal/service/workinghours"
	computeMetricsUC "github.com/bobylov03/salon/internal/usecase/compute_metrics"
	createAppointmentUC "github.com/bobylov03/salon/internal/usecase/create_appointment"
	getDayScheduleUC "github.com/bobylov03/salon/internal/usecase/get_day_schedule"
	getWeekScheduleUC "github.com/bobylov03/salon/internal/usecase/get_week_schedule"
	rescheduleAppointmentUC "github.com/bobylov03/salon/internal/usecase/reschedule_appointment"
	"github.com/bobylov03/salon/pkg/dbmetrics"
	"github.com/bobylov03/salon/pkg/logger"
	"github.com/bobylov03/salon/pkg/metrics"
	"github.com/bobylov03/salon/pkg/simpletxmanager"
	"github.com/bobylov03/salon/pkg/txmanager"
)

// TxManager общий интерфейс менеджеров транзакций для сервисов и use cases
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon scheduling service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	staffClient := staffDirectoryClient.NewClient(
		cfg.StaffDirectory.URL,
		time.Duration(cfg.StaffDirectory.Timeout)*time.Second,
		log,
	)
	catalogClient := serviceCatalogClient.NewClient(
		cfg.ServiceCatalog.URL,
		time.Duration(cfg.ServiceCatalog.Timeout)*time.Second,
		log,
	)
	clientClient := clientDirectoryClient.NewClient(
		cfg.ClientDirectory.URL,
		time.Duration(cfg.ClientDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffDirectory=%s, ServiceCatalog=%s, ClientDirectory=%s)",
		cfg.StaffDirectory.URL, cfg.ServiceCatalog.URL, cfg.ClientDirectory.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		apptRepository *appointmentRepo.Repository
		whRepository   *workingHoursRepo.Repository
		txMgr          TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		whRepository = workingHoursRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		apptRepository = appointmentRepo.NewRepository(db)
		whRepository = workingHoursRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем хранилище ключей идемпотентности (если включено)
	var idemStore createAppointmentUC.IdempotencyStore
	if cfg.Idempotency.Enabled {
		store := idempotency.NewStore(
			cfg.Idempotency.RedisAddr,
			cfg.Idempotency.RedisDB,
			time.Duration(cfg.Idempotency.TTLMinutes)*time.Minute,
		)
		if err := store.Ping(context.Background()); err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer store.Close()

		idemStore = store
		log.Info("Idempotency store connected (addr=%s, db=%d)", cfg.Idempotency.RedisAddr, cfg.Idempotency.RedisDB)
	}

	// Инициализируем сервисы
	apptSvc := appointmentsService.NewService(
		apptRepository,
		catalogClient,
		txMgr,
		log,
	)
	whSvc := workingHoursService.NewService(
		whRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		apptRepository,
		staffClient,
		catalogClient,
		clientClient,
		idemStore,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		apptRepository,
		staffClient,
		txMgr,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		apptRepository,
		whRepository,
		staffClient,
		log,
	)
	getWeekScheduleUseCase := getWeekScheduleUC.NewUseCase(
		apptRepository,
		whRepository,
		staffClient,
		log,
	)
	computeMetricsUseCase := computeMetricsUC.NewUseCase(
		apptRepository,
		log,
	)

	// Инициализируем handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getWeekSchedule := getWeekScheduleHandler.NewHandler(getWeekScheduleUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(apptSvc, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(apptSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(apptSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	updateAppointmentServices := updateAppointmentServicesHandler.NewHandler(apptSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(apptSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(whSvc, log)
	setWorkingHours := setWorkingHoursHandler.NewHandler(whSvc, log)
	getMetricsSummary := getMetricsSummaryHandler.NewHandler(computeMetricsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID())

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание мастера на день
	api.HandleFunc("/staff/{staffId}/schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// Расписание мастера на неделю
	api.HandleFunc("/staff/{staffId}/week-schedule", getWeekSchedule.Handle).Methods(http.MethodGet)

	// График работы мастера
	api.HandleFunc("/staff/{staffId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(log))

	// --- Записи клиентов ---
	// Список записей с фильтрацией
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Перенос записи
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Замена состава услуг записи
	protected.HandleFunc("/appointments/{appointmentId}/services", updateAppointmentServices.Handle).Methods(http.MethodPut)

	// Удаление записи
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Графики работы ---
	// Установка или очистка рабочих часов на день недели
	protected.HandleFunc("/staff/{staffId}/working-hours/{dayOfWeek}", setWorkingHours.Handle).Methods(http.MethodPut)

	// --- Аналитика ---
	// Сводка показателей по записям
	protected.HandleFunc("/analytics/summary", getMetricsSummary.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
