package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-service/internal/auth"
	"todo-service/internal/config"
	apphttp "todo-service/internal/http"
	"todo-service/internal/logging"
	"todo-service/internal/repository/sqlite"
	"todo-service/internal/service"
	"todo-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, logCloser, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		logrus.Fatalf("setup logger: %v", err)
	}
	defer logCloser.Close()

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	todoRepo := sqlite.NewTodoRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := todoRepo.Init(ctx); err != nil {
		logger.Fatalf("init todo repository: %v", err)
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:    []byte(cfg.Auth.JWTSecret),
		Algorithm: cfg.Auth.Algorithm,
		Lifetime:  cfg.TokenTTL(),
	})
	if err != nil {
		logger.Fatalf("setup token service: %v", err)
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	userService := service.NewUserService(userRepo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), cfg.Auth.AdminSecret)
	todoService := service.NewTodoService(todoRepo)
	exportService := service.NewExportService(todoRepo, storageSvc, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
	authService := service.NewAuthService(userService, tokens)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	apphttp.NewHandler(authService, userService, todoService, exportService, apphttp.Options{
		LegacyStatusCodes: cfg.Auth.LegacyStatusCodes,
		Logger:            logger,
	}).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildStorage returns a nil service when no bucket is configured, which
// leaves the export endpoints answering 503.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("no storage bucket configured, todo exports disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
