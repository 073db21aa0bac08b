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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignRoomHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/assign_room"
	commitBookingHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/commit_booking"
	createSessionHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/create_session"
	deleteSessionHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/delete_session"
	getSessionHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/get_session"
	selectOptionHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/select_option"
	updateStayHandler "github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers/update_stay"
	"github.com/pethotel/PHM-BookingWorkflow/internal/api/middleware"
	"github.com/pethotel/PHM-BookingWorkflow/internal/config"
	reservationRepo "github.com/pethotel/PHM-BookingWorkflow/internal/infra/storage/reservation"
	availabilityClient "github.com/pethotel/PHM-BookingWorkflow/internal/integrations/availability"
	clientDirectoryClient "github.com/pethotel/PHM-BookingWorkflow/internal/integrations/clientdirectory"
	roomInventoryClient "github.com/pethotel/PHM-BookingWorkflow/internal/integrations/roominventory"
	"github.com/pethotel/PHM-BookingWorkflow/internal/service/wizardsessions"
	commitBookingUC "github.com/pethotel/PHM-BookingWorkflow/internal/usecase/commit_booking"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/dbmetrics"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/logger"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/metrics"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/simpletxmanager"
	"github.com/pethotel/PHM-BookingWorkflow/pkg/txmanager"
)

// Интервал между проходами уборщика неактивных сессий
const sessionSweepInterval = time.Minute

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

	log.Info("Starting PHM-BookingWorkflow...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(prometheus.DefaultRegisterer, cfg.Metrics.ServiceName)
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
	availability := availabilityClient.NewClient(
		cfg.Availability.URL,
		time.Duration(cfg.Availability.Timeout)*time.Second,
		log,
	)
	roomInventory := roomInventoryClient.NewClient(
		cfg.RoomInventory.URL,
		time.Duration(cfg.RoomInventory.Timeout)*time.Second,
		log,
	)
	clientDirectory := clientDirectoryClient.NewClient(
		cfg.ClientDirectory.URL,
		time.Duration(cfg.ClientDirectory.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Availability=%s, RoomInventory=%s, ClientDirectory=%s)",
		cfg.Availability.URL, cfg.RoomInventory.URL, cfg.ClientDirectory.URL)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		txMgr                 TxManager
		searchMetrics         wizardsessions.SearchMetrics
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		searchMetrics = metricsCollector
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем реестр сессий мастера
	sessionService := wizardsessions.NewService(
		availability,
		roomInventory,
		time.Duration(cfg.Workflow.DebounceMS)*time.Millisecond,
		cfg.Workflow.TransferDisplayCap,
		time.Duration(cfg.Workflow.SessionTTLMinutes)*time.Minute,
		log,
		searchMetrics,
	)

	// Уборщик неактивных сессий
	stopSweeperCh := make(chan struct{})
	go sessionService.RunSweeper(sessionSweepInterval, stopSweeperCh)
	log.Info("Session sweeper started (ttl=%dm, interval=%s)",
		cfg.Workflow.SessionTTLMinutes, sessionSweepInterval)

	// Инициализируем use cases
	commitBookingUseCase := commitBookingUC.NewUseCase(
		sessionService,
		reservationRepository,
		clientDirectory,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionService, log)
	getSession := getSessionHandler.NewHandler(sessionService, log)
	updateStay := updateStayHandler.NewHandler(sessionService, log)
	selectOption := selectOptionHandler.NewHandler(sessionService, log)
	assignRoom := assignRoomHandler.NewHandler(sessionService, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionService, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: все маршруты мастера требуют X-User-ID header
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Сессии мастера бронирования ---
	api.HandleFunc("/wizard/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/wizard/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/wizard/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)

	// --- Шаги мастера ---
	api.HandleFunc("/wizard/sessions/{sessionId}/stay", updateStay.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/wizard/sessions/{sessionId}/option", selectOption.Handle).Methods(http.MethodPut)
	api.HandleFunc("/wizard/sessions/{sessionId}/room", assignRoom.Handle).Methods(http.MethodPut)

	// --- Коммит составленного бронирования ---
	api.HandleFunc("/wizard/sessions/{sessionId}/commit", commitBooking.Handle).Methods(http.MethodPost)

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

	// Останавливаем уборщик сессий
	close(stopSweeperCh)

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
