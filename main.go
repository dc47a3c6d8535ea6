package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodly/configs"
	"foodly/pkg/kv"
	"foodly/routes"
	"foodly/services"
	"foodly/ws"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := configs.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *configs.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := configs.OpenDB(cfg, logger)
	if err != nil {
		return err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := configs.SeedAdmin(db, cfg, logger); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedCatalog(db, logger); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	store, err := openKV(ctx, cfg, db)
	if err != nil {
		return fmt.Errorf("kv %s: %w", cfg.KVBackend, err)
	}
	notifier, err := openNotifier(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("notifier: %w", err)
	}

	hub := ws.NewCartHub(logger)
	go hub.Run(ctx)

	// HTTP
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		DB: db, Cfg: cfg, Log: logger,
		KV: store, Notifier: notifier, Hub: hub,
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	errc := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", srv.Addr), zap.String("kv", cfg.KVBackend))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// openKV picks where carts live.
func openKV(ctx context.Context, cfg *configs.Config, db *gorm.DB) (kv.Store, error) {
	switch cfg.KVBackend {
	case "db", "":
		return kv.NewGorm(db)
	case "memory":
		return kv.NewMemory(), nil
	case "file":
		return kv.NewFile(cfg.KVDir)
	case "dynamodb":
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return kv.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTable), nil
	default:
		return nil, fmt.Errorf("unsupported KV_BACKEND %q", cfg.KVBackend)
	}
}

// openNotifier sends order events to SQS when ORDER_QUEUE_URL is set, and
// only logs them otherwise.
func openNotifier(ctx context.Context, cfg *configs.Config, logger *zap.Logger) (services.OrderNotifier, error) {
	if cfg.OrderQueueURL == "" {
		return services.LogNotifier{Log: logger}, nil
	}
	awsCfg, err := loadAWS(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return services.NewSQSNotifier(sqs.NewFromConfig(awsCfg), cfg.OrderQueueURL), nil
}

func loadAWS(ctx context.Context, cfg *configs.Config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
