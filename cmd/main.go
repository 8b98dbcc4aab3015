package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	bookingsHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/bookings"
	carsHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/cars"
	createBookingHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/create_booking"
	draftsHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/drafts"
	importPartsHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/import_parts"
	jobsHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/jobs"
	partItemsHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/part_items"
	profileHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/profile"
	sessionHandler "github.com/m04kA/SMC-FleetDesk/internal/api/handlers/session"
	"github.com/m04kA/SMC-FleetDesk/internal/api/middleware"
	"github.com/m04kA/SMC-FleetDesk/internal/config"
	sessionRepo "github.com/m04kA/SMC-FleetDesk/internal/infra/storage/session"
	"github.com/m04kA/SMC-FleetDesk/internal/integrations/fleetapi"
	draftsService "github.com/m04kA/SMC-FleetDesk/internal/service/drafts"
	"github.com/m04kA/SMC-FleetDesk/internal/store"
	createBookingUC "github.com/m04kA/SMC-FleetDesk/internal/usecase/create_booking"
	importPartsUC "github.com/m04kA/SMC-FleetDesk/internal/usecase/import_parts"
	"github.com/m04kA/SMC-FleetDesk/pkg/logger"
	"github.com/m04kA/SMC-FleetDesk/pkg/metrics"
)

func main() {
	configPath := flag.String("config", envOrDefault("CONFIG_PATH", "config.toml"), "path to the TOML config file")
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

	log.Info("Starting SMC-FleetDesk...")
	log.Info("Configuration loaded from %s", *configPath)

	// Коллекторы регистрируются всегда, наружу отдаются только при metrics.enabled
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Хранилище токена сессии
	tokenRepository, closer, err := openTokenRepository(cfg)
	if err != nil {
		log.Fatal("Failed to open session storage: %v", err)
	}
	defer closer.Close()
	log.Info("Session storage initialized (backend=%s)", cfg.Session.Backend)

	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// Инициализируем состояние клиента и клиент fleet API.
	// Контейнер нужен клиенту для глобального logout, поэтому связываем через замыкание.
	sess := store.NewSession(tokenRepository, log)

	var container *store.Container
	client := fleetapi.NewClient(
		cfg.FleetAPI.URL,
		cfg.FleetAPITimeout(),
		log,
		fleetapi.WithTokenSource(sess),
		fleetapi.WithUnauthorizedHandler(func() { container.HandleUnauthorized() }),
		fleetapi.WithObserver(metricsCollector),
	)
	log.Info("Fleet API client initialized (url=%s timeout=%ds)", cfg.FleetAPI.URL, cfg.FleetAPI.Timeout)

	container = store.NewContainer(store.API{
		Auth:      client.Auth,
		Cars:      client.Cars,
		Jobs:      client.Jobs,
		PartItems: client.PartItems,
		Bookings:  client.Bookings,
		Users:     client.Users,
	}, sess, log, metricsCollector)

	// Восстанавливаем сохраненную сессию
	restoreCtx, cancelRestore := context.WithTimeout(appCtx, cfg.FleetAPITimeout())
	if _, err := container.Restore(restoreCtx); err != nil {
		if errors.Is(err, store.ErrNoStoredSession) {
			log.Info("No stored session, waiting for login")
		} else {
			log.Warn("Stored session was not restored: %v", err)
		}
	}
	cancelRestore()

	// Инициализируем сервисы
	draftSvc := draftsService.NewService(
		container.Jobs,
		container.PartItems,
		container,
		cfg.Pricing.VATRate,
		log,
		draftsService.WithObserver(metricsCollector),
	)
	container.OnReset(draftSvc.Reset)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		draftSvc,
		client.Bookings,
		container,
		container.Session,
		log,
	)
	importPartsUseCase := importPartsUC.NewUseCase(
		container,
		client.PartItems,
		container.PartItems,
		cfg.ImportPollInterval(),
		log,
	)

	// Фоновое обновление админских коллекций
	refresher := store.NewRefresher(
		cfg.AdminRefreshInterval(),
		container.AdminCollections(),
		log,
		store.WithCondition(container.Session.IsAdmin),
	)
	go refresher.Run(appCtx)
	log.Info("Admin collections refresher started (interval=%ds)", cfg.Store.AdminRefreshInterval)

	// Инициализируем handlers
	sessionH := sessionHandler.NewHandler(container, sess, log)
	profileH := profileHandler.NewHandler(container, log)
	jobsH := jobsHandler.NewHandler(container.Jobs, container, log)
	partItemsH := partItemsHandler.NewHandler(container.PartItems, container.AllPartItems, container, log)
	carsH := carsHandler.NewHandler(container.Cars, container.AdminCars, container, log)
	bookingsH := bookingsHandler.NewHandler(container.Bookings, container.AdminBookings, container, log)
	draftsH := draftsHandler.NewHandler(draftSvc, log)
	importPartsH := importPartsHandler.NewHandler(appCtx, importPartsUseCase, cfg.ImportWaitTimeout(), log)
	createBookingH := createBookingHandler.NewHandler(createBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogging(log))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без сессии)
	// ============================================================

	api.HandleFunc("/session", sessionH.Get).Methods(http.MethodGet)
	api.HandleFunc("/session/login", sessionH.Login).Methods(http.MethodPost)
	api.HandleFunc("/session/register", sessionH.Register).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют активной сессии)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireSession(sess))

	// Маршруты администратора проверяют роль поверх сессии
	adminOnly := middleware.RequireAdmin(sess)
	admin := func(h http.HandlerFunc) http.Handler {
		return adminOnly(h)
	}

	// --- Сессия и профиль ---
	protected.HandleFunc("/session/logout", sessionH.Logout).Methods(http.MethodPost)
	protected.Handle("/session/register-mechanic", admin(sessionH.RegisterMechanic)).Methods(http.MethodPost)
	protected.HandleFunc("/profile", profileH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profileH.Update).Methods(http.MethodPut)

	// --- Справочник работ ---
	protected.HandleFunc("/jobs", jobsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/jobs/retry", jobsH.Retry).Methods(http.MethodPost)
	protected.Handle("/jobs", admin(jobsH.Create)).Methods(http.MethodPost)
	protected.Handle("/jobs/{jobId}", admin(jobsH.Delete)).Methods(http.MethodDelete)

	// --- Склад запчастей ---
	protected.HandleFunc("/cars/{carId}/part-items", partItemsH.ListForCar).Methods(http.MethodGet)
	protected.HandleFunc("/cars/{carId}/part-items/retry", partItemsH.RetryForCar).Methods(http.MethodPost)
	protected.HandleFunc("/part-items/clean", partItemsH.Clean).Methods(http.MethodPost)
	protected.Handle("/part-items/retry", admin(partItemsH.RetryAll)).Methods(http.MethodPost)
	protected.Handle("/part-items", admin(partItemsH.List)).Methods(http.MethodGet)
	protected.Handle("/part-items", admin(partItemsH.Create)).Methods(http.MethodPost)
	protected.Handle("/part-items/{partItemId}", admin(partItemsH.Delete)).Methods(http.MethodDelete)

	// --- Автомобили ---
	protected.HandleFunc("/cars", carsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/cars/retry", carsH.Retry).Methods(http.MethodPost)
	protected.HandleFunc("/cars", carsH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/cars/{carId}", carsH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/cars/{carId}", carsH.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/cars/{carId}/import-parts", importPartsH.Handle).Methods(http.MethodPost)
	protected.Handle("/admin/cars", admin(carsH.ListAll)).Methods(http.MethodGet)
	protected.Handle("/admin/cars/retry", admin(carsH.RetryAll)).Methods(http.MethodPost)

	// --- Черновики бронирования ---
	protected.HandleFunc("/drafts", draftsH.Open).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}", draftsH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/drafts/{draftId}", draftsH.Discard).Methods(http.MethodDelete)
	protected.HandleFunc("/drafts/{draftId}/jobs/{jobId}/toggle", draftsH.ToggleJob).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/jobs/{jobId}", draftsH.OverrideJob).Methods(http.MethodPut)
	protected.HandleFunc("/drafts/{draftId}/parts/{partId}/toggle", draftsH.TogglePart).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/parts/{partId}", draftsH.OverridePart).Methods(http.MethodPut)
	protected.HandleFunc("/drafts/{draftId}/slots", draftsH.AddSlot).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/slots", draftsH.RemoveSlot).Methods(http.MethodDelete)
	protected.HandleFunc("/drafts/{draftId}/postal-code", draftsH.SetPostalCode).Methods(http.MethodPut)
	protected.HandleFunc("/drafts/{draftId}/next", draftsH.Next).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/back", draftsH.Back).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/goto", draftsH.GoTo).Methods(http.MethodPost)
	protected.HandleFunc("/drafts/{draftId}/submit", createBookingH.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", bookingsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/retry", bookingsH.Retry).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", bookingsH.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/pay", bookingsH.Pay).Methods(http.MethodPost)
	protected.Handle("/admin/bookings", admin(bookingsH.ListAll)).Methods(http.MethodGet)
	protected.Handle("/admin/bookings/retry", admin(bookingsH.RetryAll)).Methods(http.MethodPost)

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

	// Останавливаем фоновые задачи: refresher и ожидание импортов
	cancelApp()

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

// openTokenRepository создает хранилище токена по session.backend
func openTokenRepository(cfg *config.Config) (store.TokenRepository, io.Closer, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Session.Redis.Addr, err)
		}

		return sessionRepo.NewRedisRepository(rdb, cfg.Session.Redis.Key), rdb, nil

	case config.SessionBackendPostgres:
		db, err := sessionRepo.Open(sessionRepo.DriverPostgres, cfg.Session.Database.DSN())
		if err != nil {
			return nil, nil, err
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Session.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Session.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Session.Database.ConnMaxLifetime) * time.Second)

		repo, err := sessionRepo.NewRepository(db, sessionRepo.DriverPostgres)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil

	default:
		db, err := sessionRepo.Open(sessionRepo.DriverSQLite, cfg.Session.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}

		repo, err := sessionRepo.NewRepository(db, sessionRepo.DriverSQLite)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
