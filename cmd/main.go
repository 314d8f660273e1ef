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
	_ "modernc.org/sqlite"

	bookingIntentHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/booking_intent"
	cancelMeetingHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/cancel_meeting"
	checkEquipmentHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/check_equipment"
	findAvailableRoomsHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/find_available_rooms"
	healthHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/health"
	listOrphansHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/list_orphans"
	setRecurrenceHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/set_recurrence"
	validateTimeRangeHandler "github.com/m04kA/SMC-MeetingBooking/internal/api/handlers/validate_time_range"
	"github.com/m04kA/SMC-MeetingBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MeetingBooking/internal/config"
	intentStore "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/intent"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	meetingsService "github.com/m04kA/SMC-MeetingBooking/internal/service/meetings"
	"github.com/m04kA/SMC-MeetingBooking/internal/session"
	bookMeetingUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
	checkEquipmentUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/check_equipment"
	findAvailableRoomsUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/find_available_rooms"
	setRecurrenceUC "github.com/m04kA/SMC-MeetingBooking/internal/usecase/set_recurrence"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
	"github.com/m04kA/SMC-MeetingBooking/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
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

	log.Info("Starting SMC-MeetingBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Backend.Location()
	if err != nil {
		log.Fatal("Failed to load backend time zone: %v", err)
	}

	// Инициализируем метрики (если включены)
	// При выключенных метриках коллектор остается nil: его методы это допускают
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к хранилищу журнала "осиротевших" ресурсов
	db, err := sql.Open(cfg.Storage.Driver, cfg.Storage.DSN())
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	if cfg.Storage.Driver == "sqlite" {
		// SQLite не поддерживает параллельную запись
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Storage.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Storage.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Storage.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping storage: %v", err)
	}

	orphanRepository := orphanRepo.NewRepository(db, cfg.Storage.Driver)
	if err := orphanRepository.Migrate(startupCtx); err != nil {
		log.Fatal("Failed to migrate orphan ledger: %v", err)
	}
	log.Info("Orphan ledger ready (driver=%s)", cfg.Storage.Driver)

	// Инициализируем клиент бэкенда
	backendClient := meetingapi.NewClient(
		cfg.Backend.URL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Backend client initialized (url=%s, timeout=%ds, time_zone=%s)",
		cfg.Backend.URL, cfg.Backend.Timeout, cfg.Backend.TimeZone)

	intents := intentStore.NewStore(cfg.Intents.MaxSize, time.Duration(cfg.Intents.TTLMinutes)*time.Minute)

	// Инициализируем сервисы
	meetingSvc := meetingsService.NewService(backendClient, orphanRepository, log)

	// Инициализируем use cases
	findAvailableRoomsUseCase := findAvailableRoomsUC.NewUseCase(backendClient, location, log)
	checkEquipmentUseCase := checkEquipmentUC.NewUseCase(backendClient, location, log)
	setRecurrenceUseCase := setRecurrenceUC.NewUseCase(backendClient, log)
	bookMeetingUseCase := bookMeetingUC.NewUseCase(
		backendClient,
		intents,
		orphanRepository,
		metricsCollector,
		bookMeetingUC.RetryPolicy{
			MaxRetries:      cfg.Backend.MaxRetries,
			InitialInterval: time.Duration(cfg.Backend.RetryInitialIntervalMs) * time.Millisecond,
			MaxInterval:     time.Duration(cfg.Backend.RetryMaxIntervalMs) * time.Millisecond,
		},
		location,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(db, intents, log)
	validateTimeRange := validateTimeRangeHandler.NewHandler(location, log)
	findAvailableRooms := findAvailableRoomsHandler.NewHandler(findAvailableRoomsUseCase, log)
	checkEquipment := checkEquipmentHandler.NewHandler(checkEquipmentUseCase, log)
	setRecurrence := setRecurrenceHandler.NewHandler(setRecurrenceUseCase, log)
	cancelMeeting := cancelMeetingHandler.NewHandler(meetingSvc, log)
	listOrphans := listOrphansHandler.NewHandler(meetingSvc, log)
	bookingIntents := bookingIntentHandler.NewHandler(bookMeetingUseCase, cfg.Backend.StepsTimeout(), log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Проверка окна времени (без обращения к бэкенду)
	api.HandleFunc("/time-ranges/validate", validateTimeRange.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>, подписанный auth.jwt_secret)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(session.NewVerifier(cfg.Auth.JWTSecret)))

	// --- Поиск ---
	protected.HandleFunc("/rooms/available", findAvailableRooms.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/equipment/availability", checkEquipment.Handle).Methods(http.MethodPost)

	// --- Бронирование по шагам ---
	protected.HandleFunc("/booking-intents", bookingIntents.Start).Methods(http.MethodPost)
	protected.HandleFunc("/booking-intents/{intentId}", bookingIntents.Get).Methods(http.MethodGet)
	protected.HandleFunc("/booking-intents/{intentId}/advance", bookingIntents.Advance).Methods(http.MethodPost)
	protected.HandleFunc("/booking-intents/{intentId}/run", bookingIntents.Run).Methods(http.MethodPost)
	protected.HandleFunc("/booking-intents/{intentId}/cancel", bookingIntents.Cancel).Methods(http.MethodPost)

	// --- Встречи ---
	protected.HandleFunc("/meetings/{meetingId}/recurrence", setRecurrence.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/meetings/{meetingId}/cancel", cancelMeeting.Handle).Methods(http.MethodPost)

	// --- Журнал "осиротевших" ресурсов ---
	protected.HandleFunc("/orphans", listOrphans.Handle).Methods(http.MethodGet)

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

	if n := intents.Len(); n > 0 {
		log.Warn("%d unfinished booking intents dropped on shutdown", n)
	}

	log.Info("Server stopped gracefully")
}
