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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookVisitHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/book_visit"
	cancelVisitHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/cancel_visit"
	completeVisitHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/complete_visit"
	createTimeSlotHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/create_time_slot"
	createVisitSlotHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/create_visit_slot"
	deleteTimeSlotHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/delete_time_slot"
	deleteVisitSlotHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/delete_visit_slot"
	getAvailableSlotsHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/get_available_slots"
	getPrisonScheduleHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/get_prison_schedule"
	getPrisonVisitsHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/get_prison_visits"
	getVisitHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/get_visit"
	recordAttendanceHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/record_attendance"
	updateTimeSlotHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/update_time_slot"
	updateVisitSlotHandler "github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers/update_visit_slot"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/middleware"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/config"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	timeslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/timeslot"
	visitRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visit"
	visitslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visitslot"
	prisonRegisterClient "github.com/ovs-lab/OVS-VisitScheduler/internal/integrations/prisonregister"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/jobs"
	scheduleService "github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule"
	visitsService "github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits"
	bookVisitUC "github.com/ovs-lab/OVS-VisitScheduler/internal/usecase/book_visit"
	getAvailableSlotsUC "github.com/ovs-lab/OVS-VisitScheduler/internal/usecase/get_available_slots"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/dbmetrics"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/logger"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/metrics"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/simpletxmanager"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/txmanager"
)

func main() {
	// Подхватываем .env, если он есть (локальная разработка)
	_ = godotenv.Load()

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

	log.Info("Starting OVS-VisitScheduler...")
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

	// Инициализируем клиент реестра тюрем
	prisonClient := prisonRegisterClient.NewClient(
		cfg.PrisonRegister.URL,
		time.Duration(cfg.PrisonRegister.Timeout)*time.Second,
		log,
	)
	log.Info("Prison register client initialized (url=%s, timeout=%ds)",
		cfg.PrisonRegister.URL, cfg.PrisonRegister.Timeout)

	// Инициализируем publisher доменных событий
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		redisPublisher, err := events.NewRedisPublisher(
			context.Background(),
			cfg.Events.RedisAddr,
			cfg.Events.RedisPassword,
			cfg.Events.RedisDB,
			cfg.Events.Channel,
			log,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisPublisher.Close()
		publisher = redisPublisher
		log.Info("Event publishing enabled (redis=%s, channel=%s)", cfg.Events.RedisAddr, cfg.Events.Channel)
	} else {
		log.Info("Event publishing disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		timeSlotRepository  *timeslotRepo.Repository
		visitSlotRepository *visitslotRepo.Repository
		visitRepository     *visitRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		timeSlotRepository = timeslotRepo.NewRepository(wrappedDB)
		visitSlotRepository = visitslotRepo.NewRepository(wrappedDB)
		visitRepository = visitRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		timeSlotRepository = timeslotRepo.NewRepository(db)
		visitSlotRepository = visitslotRepo.NewRepository(db)
		visitRepository = visitRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	visitsSvc := visitsService.NewService(visitRepository, publisher, log)
	scheduleSvc := scheduleService.NewService(
		timeSlotRepository,
		visitSlotRepository,
		visitRepository,
		prisonClient,
		publisher,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		timeSlotRepository,
		visitRepository,
		log,
	)
	bookVisitUseCase := bookVisitUC.NewUseCase(
		visitRepository,
		visitSlotRepository,
		timeSlotRepository,
		publisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getPrisonSchedule := getPrisonScheduleHandler.NewHandler(scheduleSvc, log)
	getVisit := getVisitHandler.NewHandler(visitsSvc, log)
	getPrisonVisits := getPrisonVisitsHandler.NewHandler(visitsSvc, log)
	bookVisit := bookVisitHandler.NewHandler(bookVisitUseCase, log)
	cancelVisit := cancelVisitHandler.NewHandler(visitsSvc, log)
	completeVisit := completeVisitHandler.NewHandler(visitsSvc, log)
	recordAttendance := recordAttendanceHandler.NewHandler(visitsSvc, log)
	createTimeSlot := createTimeSlotHandler.NewHandler(scheduleSvc, log)
	updateTimeSlot := updateTimeSlotHandler.NewHandler(scheduleSvc, log)
	deleteTimeSlot := deleteTimeSlotHandler.NewHandler(scheduleSvc, log)
	createVisitSlot := createVisitSlotHandler.NewHandler(scheduleSvc, log)
	updateVisitSlot := updateVisitSlotHandler.NewHandler(scheduleSvc, log)
	deleteVisitSlot := deleteVisitSlotHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health endpoint (публичный)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Маршруты чтения
	read := api.PathPrefix("").Subrouter()
	read.Use(auth.RequireRole(cfg.Auth.ReadRole))

	read.HandleFunc("/prisons/{prisonCode}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	read.HandleFunc("/prisons/{prisonCode}/schedule", getPrisonSchedule.Handle).Methods(http.MethodGet)
	read.HandleFunc("/prisons/{prisonCode}/visits", getPrisonVisits.Handle).Methods(http.MethodGet)
	read.HandleFunc("/visits/{reference}", getVisit.Handle).Methods(http.MethodGet)

	// Маршруты администрирования
	admin := api.PathPrefix("").Subrouter()
	admin.Use(auth.RequireRole(cfg.Auth.AdminRole))

	admin.HandleFunc("/visits", bookVisit.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/visits/{reference}/cancel", cancelVisit.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/visits/{reference}/complete", completeVisit.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/visits/{reference}/attendance", recordAttendance.Handle).Methods(http.MethodPut)

	admin.HandleFunc("/prisons/{prisonCode}/time-slots", createTimeSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/time-slots/{id}", updateTimeSlot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/time-slots/{id}", deleteTimeSlot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/time-slots/{id}/visit-slots", createVisitSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/visit-slots/{id}", updateVisitSlot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/visit-slots/{id}", deleteVisitSlot.Handle).Methods(http.MethodDelete)

	// Запускаем фоновую задачу просрочки визитов
	var sweeper *jobs.ExpirySweeper
	if cfg.Jobs.Enabled {
		sweeper = jobs.NewExpirySweeper(visitRepository, publisher, cfg.Jobs.ExpirySchedule, log)
		if err := sweeper.Start(); err != nil {
			log.Fatal("Failed to start expiry sweeper: %v", err)
		}
	} else {
		log.Info("Background jobs disabled")
	}

	// CORS для браузерных клиентов
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	if sweeper != nil {
		sweeper.Stop()
	}

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
