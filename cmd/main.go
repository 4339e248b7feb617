package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/bookings"
	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/checkin"
	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/lifecycle"
	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/payments"
	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/policies"
	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/api/handlers/slots"
	"github.com/glossup/GLS-SchedulingService/internal/api/middleware"
	"github.com/glossup/GLS-SchedulingService/internal/config"
	"github.com/glossup/GLS-SchedulingService/internal/domain"
	"github.com/glossup/GLS-SchedulingService/internal/infra/events"
	bookingstorage "github.com/glossup/GLS-SchedulingService/internal/infra/storage/booking"
	policystorage "github.com/glossup/GLS-SchedulingService/internal/infra/storage/policy"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/companyservice"
	"github.com/glossup/GLS-SchedulingService/internal/integrations/staffservice"
	bookingssvc "github.com/glossup/GLS-SchedulingService/internal/service/bookings"
	"github.com/glossup/GLS-SchedulingService/internal/service/schedulingpolicy"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/accept_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/cancel_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/complete_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/create_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/decline_booking"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/get_available_slots"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/issue_checkin_code"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/propose_reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/report_no_show"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/request_reschedule"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/respond_proposal"
	"github.com/glossup/GLS-SchedulingService/internal/usecase/verify_checkin"
	"github.com/glossup/GLS-SchedulingService/pkg/dbmetrics"
	"github.com/glossup/GLS-SchedulingService/pkg/logger"
	"github.com/glossup/GLS-SchedulingService/pkg/metrics"
	"github.com/glossup/GLS-SchedulingService/pkg/simpletxmanager"
	"github.com/glossup/GLS-SchedulingService/pkg/txmanager"
)

// systemClock реальные часы; в тестах usecases получают фиксированное время
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// txRunner общий интерфейс обоих менеджеров транзакций
type txRunner interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer lg.Close()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("service stopped with error: %v", err)
	}
}

func run(cfg *config.Config, lg *logger.Logger) error {
	m := metrics.New(cfg.Metrics.ServiceName)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	lg.Info("[Main] Connected to PostgreSQL: host=%s, dbname=%s", cfg.Database.Host, cfg.Database.DBName)

	stopCh := make(chan struct{})
	defer close(stopCh)

	// С включенными метриками запросы к БД идут через обертку,
	// собирающую длительности и статистику пула
	var dbExecutor bookingstorage.DBExecutor
	var txMgr txRunner
	if cfg.Metrics.Enabled {
		wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)
		dbExecutor = wrapped
		txMgr = txmanager.NewTransactionManager(wrapped)
	} else {
		dbExecutor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	companyClient := companyservice.NewClient(cfg.CompanyService.URL, time.Duration(cfg.CompanyService.Timeout)*time.Second, lg)
	staffClient := staffservice.NewClient(cfg.StaffService.URL, time.Duration(cfg.StaffService.Timeout)*time.Second, lg)

	notifier, cleanupNotifier, err := buildNotifier(cfg, lg, m)
	if err != nil {
		return err
	}
	defer cleanupNotifier()

	bookingRepo := bookingstorage.NewRepository(dbExecutor)
	policyRepo := policystorage.NewRepository(dbExecutor)

	clock := systemClock{}
	policyDefaults := domain.CompanySchedulingPolicy{
		SlotStepMinutes:            cfg.Booking.SlotStepMinutes,
		MinLeadMinutes:             cfg.Booking.MinLeadMinutes,
		FreeCancelThresholdMinutes: cfg.Booking.FreeCancelThresholdMinutes,
		LateCancelFeePercent:       cfg.Booking.LateCancelFeePercent,
		NoShowGraceMinutes:         cfg.Booking.NoShowGraceMinutes,
		CheckinCodeTTLMinutes:      cfg.Booking.CheckinCodeTTLMinutes,
		MaxCustomerReschedules:     cfg.Booking.MaxCustomerReschedules,
	}
	policyService := schedulingpolicy.New(policyRepo, companyClient, policyDefaults, lg)
	bookingsService := bookingssvc.New(bookingRepo, txMgr, companyClient, lg)

	slotsUC := get_available_slots.NewUseCase(bookingRepo, policyService, companyClient, staffClient, clock, lg)
	createUC := create_booking.NewUseCase(bookingRepo, txMgr, policyService, companyClient, staffClient, notifier, m, clock, lg)
	acceptUC := accept_booking.NewUseCase(bookingRepo, txMgr, companyClient, notifier, m, clock, lg)
	declineUC := decline_booking.NewUseCase(bookingRepo, txMgr, companyClient, notifier, m, clock, lg)
	proposeUC := propose_reschedule.NewUseCase(bookingRepo, txMgr, companyClient, notifier, m, clock, lg)
	requestUC := request_reschedule.NewUseCase(bookingRepo, txMgr, policyService, notifier, m, clock, lg)
	respondUC := respond_proposal.NewUseCase(bookingRepo, txMgr, companyClient, notifier, m, clock, lg)
	cancelUC := cancel_booking.NewUseCase(bookingRepo, txMgr, policyService, notifier, m, clock, lg)
	completeUC := complete_booking.NewUseCase(bookingRepo, txMgr, companyClient, notifier, m, clock, lg)
	noShowUC := report_no_show.NewUseCase(bookingRepo, txMgr, policyService, companyClient, notifier, m, clock, lg)
	issueUC := issue_checkin_code.NewUseCase(bookingRepo, policyService, companyClient, m, clock, lg)
	verifyUC := verify_checkin.NewUseCase(bookingRepo, txMgr, companyClient, notifier, m, clock, lg)

	slotsHandler := slots.New(slotsUC, lg)
	bookingsHandler := bookings.New(createUC, cancelUC, bookingsService, lg)
	lifecycleHandler := lifecycle.New(acceptUC, declineUC, completeUC, noShowUC, lg)
	rescheduleHandler := reschedule.New(proposeUC, requestUC, respondUC, lg)
	checkinHandler := checkin.New(issueUC, verifyUC, lg)
	policiesHandler := policies.New(policyService, lg)
	paymentsHandler := payments.New(bookingsService, lg)

	router := mux.NewRouter()
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics(m))
		router.Path(cfg.Metrics.Path).Handler(promhttp.Handler())
	}

	// Вебхуки платежного провайдера: без пользовательской авторизации
	router.HandleFunc("/internal/payments/webhook", paymentsHandler.Webhook).Methods(http.MethodPost)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	api.HandleFunc("/companies/{companyID}/services/{serviceID}/staff/{staffID}/slots", slotsHandler.GetSlots).Methods(http.MethodGet)

	api.HandleFunc("/bookings", bookingsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}", bookingsHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingID}/cancel", bookingsHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/customers/me/bookings", bookingsHandler.GetMyBookings).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyID}/bookings", bookingsHandler.GetCompanyBookings).Methods(http.MethodGet)

	api.HandleFunc("/bookings/{bookingID}/accept", lifecycleHandler.Accept).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/decline", lifecycleHandler.Decline).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/complete", lifecycleHandler.Complete).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/no-show", lifecycleHandler.ReportNoShow).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{bookingID}/reschedule/propose", rescheduleHandler.Propose).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/reschedule/request", rescheduleHandler.Request).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/reschedule/respond", rescheduleHandler.Respond).Methods(http.MethodPost)

	api.HandleFunc("/bookings/{bookingID}/checkin/code", checkinHandler.IssueCode).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/checkin/preview", checkinHandler.Preview).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingID}/checkin/confirm", checkinHandler.Confirm).Methods(http.MethodPost)

	api.HandleFunc("/companies/{companyID}/policies", policiesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyID}/policies", policiesHandler.Upsert).Methods(http.MethodPut)
	api.HandleFunc("/companies/{companyID}/policies/{policyID}", policiesHandler.Delete).Methods(http.MethodDelete)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("[Main] HTTP server listening on port %d", cfg.Server.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		lg.Info("[Main] Received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	lg.Info("[Main] Server stopped")
	return nil
}

// buildNotifier собирает рассыльщик событий из включенных каналов доставки
func buildNotifier(cfg *config.Config, lg *logger.Logger, m *metrics.Metrics) (*events.Notifier, func(), error) {
	var queue events.Publisher
	var realtime events.Publisher
	cleanup := func() {}

	if cfg.RabbitMQ.Enabled {
		amqpPub, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		queue = amqpPub
		cleanup = func() {
			if err := amqpPub.Close(); err != nil {
				lg.Warn("[Main] Failed to close RabbitMQ publisher: %v", err)
			}
		}
		lg.Info("[Main] RabbitMQ publisher enabled: exchange=%s", cfg.RabbitMQ.Exchange)
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		realtime = events.NewRedisPublisher(client)

		amqpCleanup := cleanup
		cleanup = func() {
			amqpCleanup()
			if err := client.Close(); err != nil {
				lg.Warn("[Main] Failed to close Redis client: %v", err)
			}
		}
		lg.Info("[Main] Redis realtime publisher enabled: addr=%s", cfg.Redis.Addr)
	}

	notifier := events.NewNotifier(queue, realtime, cfg.Booking.NotifyRatePerSecond, cfg.Booking.NotifyBurst, lg, m)
	return notifier, cleanup, nil
}
