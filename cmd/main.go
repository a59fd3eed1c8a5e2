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
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_service"
	deleteAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_appointment"
	deleteServiceHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_service"
	getAppointmentHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_availability"
	getScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_schedule"
	getStatsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_stats"
	healthHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/health"
	listAppointmentsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_appointments"
	listServicesHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_services"
	purgeCancelledHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/purge_cancelled"
	updateScheduleHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_schedule"
	updateServiceHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	scheduleCache "github.com/m04kA/SMC-BarberBooking/internal/infra/cache/schedule"
	appointmentRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/schedule"
	appointmentsService "github.com/m04kA/SMC-BarberBooking/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-BarberBooking/internal/service/catalog"
	scheduleService "github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Часы и календарь бизнеса
	clock, err := domain.LoadBusinessClock(cfg.Business.Timezone)
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
	}
	log.Info("Business timezone: %s", cfg.Business.Timezone)

	// Кеш расписания (опционально)
	var templateCache scheduleService.TemplateCache
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis unavailable, schedule cache disabled: %v", err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			templateCache = scheduleCache.NewCache(redisClient, cfg.CacheTTL())
			log.Info("Schedule cache enabled (redis=%s, ttl=%s)", cfg.Redis.Address, cfg.CacheTTL())
		}
		cancelPing()
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, templateCache, txMgr, metricsCollector, cfg.QueryTimeout(), log)
	catalogSvc := catalogService.NewService(catalogRepository, appointmentRepository, clock, cfg.QueryTimeout(), log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, clock, metricsCollector, cfg.QueryTimeout(), log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		catalogRepository,
		scheduleSvc,
		appointmentRepository,
		clock,
		cfg.Business.SlotStepMinutes,
		cfg.QueryTimeout(),
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		scheduleSvc,
		txMgr,
		clock,
		metricsCollector,
		cfg.BookingTimeout(),
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(wrappedDB, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, clock.Location(), log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, clock, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	purgeCancelled := purgeCancelledHandler.NewHandler(appointmentsSvc, log)
	getStats := getStatsHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{id:[0-9]+}", listServices.HandleOne).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи; ограничиваем частоту по IP
	var bookingHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		go limiter.RunCleanup(stopCh)
		bookingHandler = limiter.Middleware(log)(bookingHandler)
		log.Info("Booking rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	api.Handle("/appointments", bookingHandler).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// ============================================================
	// ADMIN ROUTES (role=admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	// --- Расписание ---
	admin.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/uniform", updateSchedule.HandleUniform).Methods(http.MethodPut)

	// --- Услуги ---
	admin.HandleFunc("/services", listServices.HandleAll).Methods(http.MethodGet)
	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id:[0-9]+}", updateService.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id:[0-9]+}", deleteService.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	admin.HandleFunc("/appointments/cancelled", purgeCancelled.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{id:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи: сбор метрик пула и очистку лимитера
	close(stopCh)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
