package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coladay/config"
	"coladay/database"
	reservationRepo "coladay/database/repository/reservation"
	"coladay/handlers"
	"coladay/middleware"
	"coladay/routes"
	"coladay/services/events"
	"coladay/services/ledger"
	"coladay/services/notification"
	"coladay/utils"
	"coladay/worker"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	hourStart := config.AppConfig.BusinessHourStart
	hourEnd := config.AppConfig.BusinessHourEnd

	// Reservation store: the ledger's own storage.
	var repo reservationRepo.Repository
	switch config.AppConfig.StoreBackend {
	case "redis":
		repo = reservationRepo.NewRedisRepository(utils.GetLedgerClient(), hourStart, hourEnd)
	case "mongo":
		mongoRepo, err := reservationRepo.NewMongoRepository(database.GetDatabase(), hourStart, hourEnd)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize mongo reservation store: %v", err)
		}
		repo = mongoRepo
	case "memory":
		repo = reservationRepo.NewMemoryRepository(hourStart, hourEnd)
	default:
		log.Fatalf("unknown store backend %q", config.AppConfig.StoreBackend)
	}

	// Confirmation bus: in-process hub, or a Redis channel bridge when the
	// store is shared between processes.
	busCtx, stopBus := context.WithCancel(context.Background())
	defer stopBus()
	var bus events.Bus
	if config.AppConfig.StoreBackend == "redis" {
		bridge := events.NewRedisBridge(utils.GetLedgerClient(), logger)
		go bridge.Run(busCtx)
		bus = bridge
	} else {
		bus = events.NewHub()
	}

	// Notices: logged directly, or queued through asynq for async delivery.
	var notifier notification.Notifier = notification.NewLogNotifier(logger)
	var noticeWorker *asynq.Server
	if config.AppConfig.NotifierBackend == "queue" {
		client := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
		defer client.Close()
		noticeWorker = worker.InitNoticeWorker(notification.NewLogNotifier(logger), logger)
		notifier = notification.NewQueueNotifier(client)
	}

	ledgerService := ledger.NewDefaultService(repo, bus, logger, hourStart, hourEnd)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Rooms:  handlers.NewRoomHandler(ledgerService, logger),
		View:   handlers.NewViewHandler(ledgerService, bus, notifier, logger),
		Events: handlers.NewEventsHandler(bus),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if noticeWorker != nil {
		noticeWorker.Shutdown()
	}
	stopBus()

	logger.Sugar().Info("main: server stopped gracefully")
}
