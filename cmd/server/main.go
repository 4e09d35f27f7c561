package main

import (
	"context"
	"errors"
	"go-gin-flight-booking/config"
	"go-gin-flight-booking/internal/cache"
	"go-gin-flight-booking/internal/database"
	"go-gin-flight-booking/internal/events"
	"go-gin-flight-booking/internal/handler"
	"go-gin-flight-booking/internal/notify"
	"go-gin-flight-booking/internal/queue"
	"go-gin-flight-booking/internal/repository"
	"go-gin-flight-booking/internal/service"
	"go-gin-flight-booking/internal/worker"
	"go-gin-flight-booking/pkg/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	defer logger.Sync()
	log := logger.WithComponent("main")

	// .env 不存在時直接使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Failed to load .env", zap.Error(err))
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("Failed to apply schema", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	notifications, err := newNotificationQueue(ctx, cfg, rdb)
	if err != nil {
		log.Fatal("Failed to initialize notification queue", zap.Error(err))
	}

	notifier, err := newNotifier(cfg)
	if err != nil {
		log.Fatal("Failed to initialize notifier", zap.Error(err))
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ReservationsTopic)
		log.Info("Publishing reservation events to kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
	}
	defer publisher.Close()

	// Repositories
	airplaneRepo := repository.NewAirplaneRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	transactor := database.NewTransactor(pool)
	flightCache := cache.NewRedisFlightCache(rdb, cfg.Booking.FlightCacheTTL)

	// Services
	airplaneService := service.NewAirplaneService(airplaneRepo, flightRepo, flightCache)
	flightService := service.NewFlightService(flightRepo, reservationRepo, flightCache)
	reservationService := service.NewReservationService(
		transactor, flightRepo, reservationRepo, notifications, publisher, cfg.Booking.CodeAttempts,
	)

	notificationWorker := worker.NewNotificationWorker(notifier, notifications)
	if err := notificationWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start notification worker", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	router := handler.NewEngine()
	handler.NewAirplaneHandler(airplaneService).RegisterRoutes(router)
	handler.NewFlightHandler(flightService).RegisterRoutes(router)
	handler.NewReservationHandler(reservationService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	// ctx 已取消，worker 會在處理完手上的通知後結束
	notificationWorker.Wait()
}

func newNotificationQueue(ctx context.Context, cfg *config.Config, rdb *redis.Client) (queue.NotificationQueue, error) {
	switch cfg.Notification.Backend {
	case "memory":
		return queue.NewMemoryNotificationQueue(cfg.Notification.BufferSize), nil
	default:
		return queue.NewRedisStreamNotificationQueue(ctx, rdb, cfg.Notification.ConsumerID, &queue.RedisStreamConfig{
			ClaimMinIdleTime: cfg.Notification.ClaimMinIdleTime,
			MaxRetryCount:    cfg.Notification.MaxRetryCount,
			StreamMaxLen:     cfg.Notification.StreamMaxLen,
		})
	}
}

func newNotifier(cfg *config.Config) (notify.Notifier, error) {
	if !cfg.SMTP.Enabled() {
		return notify.NewLogNotifier(), nil
	}
	return notify.NewSMTPNotifier(cfg.SMTP)
}
