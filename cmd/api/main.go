package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quickeats/fulfillment-service/config"
	"github.com/quickeats/fulfillment-service/internal/middleware"
	"github.com/quickeats/fulfillment-service/internal/pkg/broker"
	"github.com/quickeats/fulfillment-service/internal/pkg/cache"
	"github.com/quickeats/fulfillment-service/internal/pkg/logger"
	"github.com/quickeats/fulfillment-service/internal/pkg/postgres"

	cartH "github.com/quickeats/fulfillment-service/internal/cart/handler"
	cartRepoPkg "github.com/quickeats/fulfillment-service/internal/cart/repository"
	cartUCPkg "github.com/quickeats/fulfillment-service/internal/cart/usecase"

	earnH "github.com/quickeats/fulfillment-service/internal/earnings/handler"
	earnRepoPkg "github.com/quickeats/fulfillment-service/internal/earnings/repository"
	earnUCPkg "github.com/quickeats/fulfillment-service/internal/earnings/usecase"

	invH "github.com/quickeats/fulfillment-service/internal/inventory/handler"
	invRepoPkg "github.com/quickeats/fulfillment-service/internal/inventory/repository"
	invUCPkg "github.com/quickeats/fulfillment-service/internal/inventory/usecase"

	menuH "github.com/quickeats/fulfillment-service/internal/menu/handler"
	menuRepoPkg "github.com/quickeats/fulfillment-service/internal/menu/repository"
	menuUCPkg "github.com/quickeats/fulfillment-service/internal/menu/usecase"

	"github.com/quickeats/fulfillment-service/internal/notification"
	notifH "github.com/quickeats/fulfillment-service/internal/notification/handler"
	notifRepoPkg "github.com/quickeats/fulfillment-service/internal/notification/repository"

	orderH "github.com/quickeats/fulfillment-service/internal/order/handler"
	orderRepoPkg "github.com/quickeats/fulfillment-service/internal/order/repository"
	orderUCPkg "github.com/quickeats/fulfillment-service/internal/order/usecase"

	riderH "github.com/quickeats/fulfillment-service/internal/rider/handler"
	riderRepoPkg "github.com/quickeats/fulfillment-service/internal/rider/repository"
	riderUCPkg "github.com/quickeats/fulfillment-service/internal/rider/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := logger.New(&logger.Config{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.New(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5. Initialize Kafka Producer
	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.NotificationsTopic,
	})
	defer producer.Close()
	appLogger.Info("Connected to Kafka",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.NotificationsTopic))

	// 6. Initialize Repositories
	menuRepo := menuRepoPkg.NewPGRepository(db)
	invRepo := invRepoPkg.NewPGRepository(db)
	cartRepo := cartRepoPkg.NewPGRepository(db)
	earnRepo := earnRepoPkg.NewPGRepository(db, cfg.Fulfillment.DefaultCommissionRate)
	notifRepo := notifRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db, invRepo, earnRepo)
	riderRepo := riderRepoPkg.NewPGRepository(db)

	// 7. Initialize Usecases
	notifier := notification.NewService(notifRepo, producer, appLogger)
	menuUC := menuUCPkg.NewMenuUseCase(menuRepo, redisClient, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	cartUC := cartUCPkg.NewCartUseCase(cartRepo, menuRepo, cfg.Fulfillment.DeliveryFee, appLogger)
	earnUC := earnUCPkg.NewEarningsUseCase(earnRepo, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, cartRepo, notifier, cfg.Fulfillment.DeliveryFee, appLogger)
	riderUC := riderUCPkg.NewRiderUseCase(riderRepo, redisClient, notifier, appLogger)
	orderUC.SetMatcher(riderUC)

	// 8. HTTP Router
	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Authentication(cfg.JWT.SecretKey))

	menuH.NewHandler(menuUC, appLogger).RegisterRoutes(api)
	invH.NewHandler(invUC, appLogger).RegisterRoutes(api)
	cartH.NewHandler(cartUC, appLogger).RegisterRoutes(api)
	orderH.NewHandler(orderUC, appLogger).RegisterRoutes(api)
	riderH.NewHandler(riderUC, appLogger).RegisterRoutes(api)
	earnH.NewHandler(earnUC, appLogger).RegisterRoutes(api)
	notifH.NewHandler(notifier, appLogger).RegisterRoutes(api)

	// 9. Start Server
	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("addr", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited")
}
