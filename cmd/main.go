package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	cancelBookingHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/create_booking"
	getAdminBookingsHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/get_admin_bookings"
	getAvailabilityHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/get_booking"
	getBookingWindowHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/get_booking_window"
	healthHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/health"
	syncSheetHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/sync_sheet"
	updateSlotCapacityHandler "github.com/m04kA/SMC-GradShootBooking/internal/api/handlers/update_slot_capacity"
	"github.com/m04kA/SMC-GradShootBooking/internal/api/middleware"
	"github.com/m04kA/SMC-GradShootBooking/internal/config"
	adminRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/admin"
	bookingRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/booking"
	slotConfigRepo "github.com/m04kA/SMC-GradShootBooking/internal/infra/storage/slotconfig"
	"github.com/m04kA/SMC-GradShootBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-GradShootBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-GradShootBooking/internal/integrations/sheetsync"
	availabilityService "github.com/m04kA/SMC-GradShootBooking/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-GradShootBooking/internal/service/bookings"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/notifications"
	"github.com/m04kA/SMC-GradShootBooking/internal/service/syncer"
	cancelBookingUC "github.com/m04kA/SMC-GradShootBooking/internal/usecase/cancel_booking"
	submitBookingUC "github.com/m04kA/SMC-GradShootBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-GradShootBooking/internal/worker"
	"github.com/m04kA/SMC-GradShootBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-GradShootBooking/pkg/logger"
	"github.com/m04kA/SMC-GradShootBooking/pkg/metrics"
	"github.com/m04kA/SMC-GradShootBooking/pkg/migrator"
	"github.com/m04kA/SMC-GradShootBooking/pkg/txmanager"
)

// mailSender отправитель писем, который нужно закрыть при остановке
type mailSender interface {
	notifications.Sender
	Close() error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-GradShootBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Метрики (nil, если выключены; все хелперы nil-safe)
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrator.Up(db, cfg.Database.MigrationsDir, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if metricsCollector != nil {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotConfigRepository := slotConfigRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)

	// Интеграции
	var verifier middleware.TokenVerifier
	if cfg.Auth.Mode == config.AuthModeJWT {
		verifier = identity.NewJWTVerifier(cfg.Auth.JWTSecret)
		log.Info("Identity: verifying JWT locally")
	} else {
		verifier = identity.NewClient(cfg.Auth.URL, cfg.Auth.ServiceKey,
			time.Duration(cfg.Auth.Timeout)*time.Second, log)
		log.Info("Identity: verifying tokens via %s (timeout=%ds)", cfg.Auth.URL, cfg.Auth.Timeout)
	}

	sheetClient := sheetsync.NewClient(cfg.SheetSync.URL, time.Duration(cfg.SheetSync.Timeout)*time.Second)
	if cfg.SheetSync.URL == "" {
		log.Warn("Sheet sync URL is empty, bookings will stay unsynced until it is configured")
	}

	var sender mailSender = notifier.NewLogSender(log)
	if cfg.Notifier.Enabled {
		mq, err := notifier.NewMQSender(cfg.Notifier.RabbitURL, cfg.Notifier.Exchange,
			cfg.Notifier.RoutingKey, cfg.Notifier.From)
		if err != nil {
			log.Warn("Failed to connect to RabbitMQ, emails will only be logged: %v", err)
		} else {
			sender = mq
			log.Info("Notifier: publishing to exchange %s (%s)", cfg.Notifier.Exchange, cfg.Notifier.RoutingKey)
		}
	}

	// Фоновая очередь
	dispatcher := worker.NewDispatcher(cfg.Worker.Workers, cfg.Worker.QueueSize, log, metricsCollector)
	dispatcher.Start()
	log.Info("Background dispatcher started (workers=%d, queue=%d)", cfg.Worker.Workers, cfg.Worker.QueueSize)

	// Сервисы
	window := cfg.Booking.RescheduleWindow()

	syncSvc := syncer.NewService(sheetClient, bookingRepository, dispatcher, syncer.Options{
		Policy: syncer.RetryPolicy{
			MaxAttempts: cfg.SheetSync.MaxAttempts,
			Backoff:     syncer.FixedBackoff(cfg.SheetSync.Backoff()),
		},
		AfterInsertSweep: cfg.SheetSync.AfterInsertSweep,
		CronBatchSize:    cfg.SheetSync.CronBatchSize,
		Mode:             cfg.SheetSync.Mode,
		Concurrency:      cfg.SheetSync.Concurrency,
	}, log, metricsCollector)
	notificationSvc := notifications.NewService(sender, dispatcher, window, log, metricsCollector)
	bookingSvc := bookingsService.NewService(bookingRepository, adminRepository, window, log)
	availabilitySvc := availabilityService.NewService(slotConfigRepository, adminRepository, log)

	// Use cases
	submitBookingUseCase := submitBookingUC.NewUseCase(
		bookingRepository,
		slotConfigRepository,
		txMgr,
		syncSvc,
		notificationSvc,
		cfg.Auth.AllowedEmailSuffix,
		window,
		log,
		metricsCollector,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		syncSvc,
		notificationSvc,
		window,
		log,
		metricsCollector,
	)

	// Handlers
	createBooking := createBookingHandler.NewHandler(submitBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingWindow := getBookingWindowHandler.NewHandler(bookingSvc, log)
	getAdminBookings := getAdminBookingsHandler.NewHandler(bookingSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, log)
	updateSlotCapacity := updateSlotCapacityHandler.NewHandler(availabilitySvc, log)
	syncSheet := syncSheetHandler.NewHandler(syncSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	authMW := middleware.Auth(verifier, log)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(stopCh)

	// Настраиваем роутер
	r := mux.NewRouter()

	if metricsCollector != nil {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// CRON (Authorization: Bearer <CRON_SECRET>)
	// ============================================================

	api.Handle("/sync-sheet",
		middleware.CronSecret(cfg.SheetSync.CronSecret, log)(http.HandlerFunc(syncSheet.Handle)),
	).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <token>)
	// ============================================================

	// Лимит стоит до проверки токена, чтобы не нагружать identity provider
	api.Handle("/book",
		limiter.Middleware(authMW(http.HandlerFunc(createBooking.Handle))),
	).Methods(http.MethodPost)

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMW)

	protected.HandleFunc("/booking", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/booking", cancelBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/booking/window", getBookingWindow.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/bookings", getAdminBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/slots", updateSlotCapacity.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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

	// Дожидаемся фоновых задач: незавершенные строки подберет следующий свип
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn("Background jobs interrupted: %v", err)
	}

	close(stopCh)

	if err := sender.Close(); err != nil {
		log.Warn("Failed to close mail sender: %v", err)
	}

	log.Info("Server stopped gracefully")
}
