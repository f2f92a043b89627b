package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"
	"telehealth-service/internal/app/delivery/http/routers"
	"telehealth-service/internal/app/drivers/database"
	"telehealth-service/internal/app/drivers/logger"
	"telehealth-service/internal/app/drivers/messaging"
	"telehealth-service/internal/app/drivers/storage"
	"telehealth-service/internal/app/services/core/bookings"
	healthSessions "telehealth-service/internal/app/services/core/health_sessions"
	"telehealth-service/internal/app/services/core/meetings"
	"telehealth-service/internal/app/services/core/reconciliation"
	"telehealth-service/internal/app/services/core/transactions"
	"telehealth-service/internal/app/services/core/unitofwork"
	"telehealth-service/internal/app/services/core/webhook"
	"telehealth-service/internal/app/services/shared/banking"
	"telehealth-service/internal/app/services/shared/calendar"
	"telehealth-service/internal/app/services/shared/jwtmanager"
	"telehealth-service/internal/app/services/shared/locker"
	"telehealth-service/internal/app/services/shared/meetingqueue"
	"telehealth-service/internal/app/services/shared/payment_gateway"
	"telehealth-service/internal/app/services/shared/reconciliationqueue"
	"telehealth-service/internal/app/services/shared/redis"
	webhookArchive "telehealth-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Postgres:       postgresDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	closeAsynq, err := bootstrapingTheApp(workerCtx, bootstrap)
	if err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	zapLogger.Info("server started", zap.String("address", internalConfig.App.Port))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	cancelWorkers()
	closeAsynq()

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

// bootstrapingTheApp wires every component onto the router and starts the
// background workers. The returned function closes the asynq client.
func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) (func(), error) {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     database.RedisAddress(bootstrap.DriverConfig),
		Password: bootstrap.DriverConfig.Redis.Password,
		DB:       internalConfig.Reconciliation.RedisDB,
	}
	asynqClient := asynq.NewClient(asynqRedisOpt)
	closeAsynq := func() {
		if err := asynqClient.Close(); err != nil {
			log.Warn("failed to close asynq client", zap.Error(err))
		}
	}

	// Persistence
	unitOfWork := unitofwork.NewPostgresUnitOfWork(bootstrap.Postgres, log)
	sessionTransactionRepository := transactions.NewSessionTransactionPostgresRepository(bootstrap.Postgres)
	healthSessionRepository := healthSessions.NewHealthSessionPostgresRepository(bootstrap.Postgres)

	// Payment gateways
	paystackClient := payment_gateway.NewPaystackClient(internalConfig, log)
	flutterwaveClient := payment_gateway.NewFlutterwaveClient(internalConfig, log)
	bankingService := banking.NewBankingService(redisRepository, paystackClient, log, internalConfig)

	// Meetings
	calendarService, err := calendar.NewGoogleCalendarService(ctx, internalConfig, log)
	if err != nil {
		closeAsynq()
		return nil, err
	}
	meetingQueue, err := meetingqueue.NewMeetingQueueService(bootstrap.RabbitMQ, log, internalConfig)
	if err != nil {
		closeAsynq()
		return nil, err
	}
	meetingPublisher := meetings.NewMeetingEventPublisher(meetingQueue, log)
	meetingProvisioner := meetings.NewMeetingProvisioner(unitOfWork, healthSessionRepository, calendarService, log)
	meetingRecovery := reconciliation.NewMeetingRecovery(unitOfWork, healthSessionRepository, meetingPublisher, log, internalConfig)
	meetingWorker := meetings.NewWorker(log, internalConfig, lockerService, meetingQueue, meetingProvisioner, meetingRecovery)
	bootstrap.MeetingWorkerStop = meetingWorker.Start(ctx)

	// Reconciliation
	transactionReconciler := reconciliation.NewTransactionReconciler(
		unitOfWork,
		sessionTransactionRepository,
		[]contracts.GatewayStatusClient{paystackClient, flutterwaveClient},
		meetingPublisher,
		log,
		internalConfig,
	)
	withdrawalReconciler := reconciliation.NewWithdrawalReconciler(unitOfWork, bankingService, log)
	retryQueue := reconciliationqueue.NewReconciliationQueueService(asynqClient, log, internalConfig)

	retryWorker := webhook.NewRetryWorker(log, internalConfig, asynqRedisOpt, transactionReconciler, withdrawalReconciler)
	retryWorkerStop, err := retryWorker.Start()
	if err != nil {
		closeAsynq()
		return nil, err
	}
	bootstrap.RetryWorkerStop = retryWorkerStop

	// Webhook
	var archive contracts.WebhookArchive
	if internalConfig.WebhookArchive.Enabled {
		archive = webhookArchive.NewMinioWebhookArchive(bootstrap.Minio, internalConfig)
	}
	webhookNormalizer := webhook.NewWebhookNormalizer(log)
	webhookUsecase := webhook.NewWebhookUsecase(
		webhookNormalizer,
		transactionReconciler,
		withdrawalReconciler,
		retryQueue,
		archive,
		log,
	)
	webhookController := controllers.NewWebhookController(log, webhookUsecase, internalConfig)

	// Health sessions
	bookingUsecase := bookings.NewBookingUsecase(unitOfWork, log, internalConfig)
	healthSessionUsecase := healthSessions.NewHealthSessionUsecase(unitOfWork, meetingPublisher, log)
	healthSessionController := controllers.NewHealthSessionController(log, bookingUsecase, healthSessionUsecase, internalConfig)
	healthController := controllers.NewHealthController(internalConfig)

	// Middlewares
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, log)
	if err != nil {
		closeAsynq()
		return nil, err
	}
	middlewares := middlewares.NewMiddlewares(log, jwtManager, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		webhookController,
		healthSessionController,
		healthController,
	)

	return closeAsynq, nil
}
