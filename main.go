package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cafebooking/config"
	"cafebooking/cron"
	"cafebooking/database"
	bookingRepo "cafebooking/database/repository/booking"
	"cafebooking/handlers"
	"cafebooking/metrics"
	"cafebooking/middleware"
	"cafebooking/routes"
	"cafebooking/services/booking"
	ai "cafebooking/services/intelligence"
	"cafebooking/services/notification"
	"cafebooking/services/tasks"
	"cafebooking/telemetry"
	"cafebooking/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const serviceName = "cafe-booking"

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	shutdownTracing := telemetry.Setup(serviceName, config.AppConfig.OTLPEndpoint, config.AppConfig.OTLPInsecure, logger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics("cafe", reg)

	healthChecks := map[string]utils.Pinger{}

	// repositories.
	repo := initRepository(logger, healthChecks)

	// notifications.
	notifier := initNotifier(logger, appMetrics)

	// reminders.
	var reminders booking.ReminderScheduler
	var reminderClient *asynq.Client
	var reminderWorker *asynq.Server
	if config.AppConfig.ReminderEnabled {
		reminderClient = asynq.NewClient(cron.ReminderRedisOpt())
		reminders = &tasks.AsynqReminderScheduler{
			Client:   reminderClient,
			LeadTime: config.AppConfig.ReminderLeadTime,
		}
		reminderWorker = cron.InitReminderWorker(repo, notifier, logger)
	}

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:      repo,
		Notifier:  notifier,
		Reminders: reminders,
		Metrics:   appMetrics,
		Logger:    logger,
		Location:  config.BusinessLocation(),
	}

	assistantHandler := &handlers.AssistantHandler{}
	var gemini *ai.GeminiClient
	if config.AppConfig.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; chat endpoints will return 500")
	} else {
		var err error
		gemini, err = ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Fatal("main: failed to initialize Gemini client", zap.Error(err))
		}

		opts := []ai.Option{
			ai.WithMaxIterations(config.AppConfig.MaxAssistantIterations),
			ai.WithModelTimeout(config.AppConfig.ModelTimeout),
			ai.WithMetrics(appMetrics),
			ai.WithLogger(logger),
		}
		if store := initContextStore(logger, healthChecks); store != nil {
			opts = append(opts, ai.WithContextStore(store))
		}

		assistantHandler.Assistant = ai.NewBookingAssistant(
			gemini.BookingModel(config.AppConfig.GeminiBookingModel),
			bookingService,
			opts...,
		)
		assistantHandler.Chat = ai.NewCafeChatService(gemini.TextModel(config.AppConfig.GeminiChatModel))
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	monitor := utils.NewHealthMonitor(healthChecks)
	monitor.Start(monitorCtx, time.Minute)

	// Create the Gin router.
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	handlerBundle := handlers.NewHandlerBundle(
		assistantHandler,
		&handlers.BookingHandler{Bookings: bookingService},
		&handlers.HealthHandler{Monitor: monitor},
	)
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AdminJWTSecret: config.AppConfig.AdminJWTSecret,
		Gatherer:       reg,
	})

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: otelhttp.NewHandler(router, serviceName),
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	stopMonitor()
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		_ = reminderClient.Close()
	}
	if gemini != nil {
		_ = gemini.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to close MongoDB", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("main: failed to flush traces", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

func initRepository(logger *zap.Logger, checks map[string]utils.Pinger) bookingRepo.BookingRepository {
	if config.AppConfig.StoreDriver == "memory" {
		logger.Warn("Using in-memory booking store; bookings are lost on restart")
		return bookingRepo.NewMemoryBookingRepo()
	}

	db, err := database.InitDB(logger)
	if err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	repo := bookingRepo.NewMongoBookingRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("main: failed to create booking indexes", zap.Error(err))
	}

	checks["mongo"] = utils.PingFunc(func(ctx context.Context) error {
		return database.MongoClient.Ping(ctx, nil)
	})
	return repo
}

func initContextStore(logger *zap.Logger, checks map[string]utils.Pinger) ai.ContextStore {
	client, err := utils.NewRedisClient(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword, config.AppConfig.RedisContextDB)
	if err != nil {
		logger.Warn("Chat context store disabled", zap.Error(err))
		return nil
	}
	checks["redis"] = utils.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	return ai.NewRedisContextStore(client, config.AppConfig.ChatContextTTL)
}

// initNotifier enables each channel whose credentials are configured.
func initNotifier(logger *zap.Logger, m *metrics.Metrics) *notification.DefaultNotificationService {
	cfg := config.AppConfig
	svc := &notification.DefaultNotificationService{
		OperatorEmail: cfg.OperatorEmail,
		OperatorTopic: cfg.FCMOperatorTopic,
		Metrics:       m,
		Logger:        logger,
	}

	if cfg.SendGridAPIKey != "" {
		mailer, err := notification.NewSendGridMailer(cfg.SendGridAPIKey, cfg.SendGridFromEmail, cfg.SendGridFromName, logger)
		if err != nil {
			logger.Warn("Email notifications disabled", zap.Error(err))
		} else {
			svc.Mailer = mailer
		}
	}

	if cfg.TwilioAccountSID != "" {
		sms, err := notification.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, logger)
		if err != nil {
			logger.Warn("SMS notifications disabled", zap.Error(err))
		} else {
			svc.SMS = sms
		}
	}

	if cfg.FirebaseCredentialsFile != "" && cfg.FCMOperatorTopic != "" {
		client, err := utils.FirebaseInit(context.Background(), cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Warn("Push notifications disabled", zap.Error(err))
		} else {
			svc.Push = notification.NewFCMPush(client)
		}
	}

	return svc
}
