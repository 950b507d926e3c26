package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"

	"github.com/formdesk/formdesk-server/internal/api/http/handler"
	"github.com/formdesk/formdesk-server/internal/api/http/middleware"
	"github.com/formdesk/formdesk-server/internal/api/http/router"
	httpServer "github.com/formdesk/formdesk-server/internal/api/http/server"
	"github.com/formdesk/formdesk-server/internal/config"
	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
	"github.com/formdesk/formdesk-server/internal/repository/postgres"
	redisrepo "github.com/formdesk/formdesk-server/internal/repository/redis"
	"github.com/formdesk/formdesk-server/internal/server"
	"github.com/formdesk/formdesk-server/internal/service"
	storage "github.com/formdesk/formdesk-server/internal/storage/minio"
	"github.com/formdesk/formdesk-server/internal/token"
	"github.com/formdesk/formdesk-server/internal/web"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	submissionRepo := postgres.NewSubmissionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	sessionRepo := redisrepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret)

	submissionService := service.NewSubmission(submissionRepo, storageClient, logger, cfg.Avatar.FallbackURL, cfg.Avatar.StrictSize)
	authService := service.NewAuth(userRepo, profileRepo, tokenManager, logger)
	sessionService := service.NewSession(sessionRepo)

	webHandler, err := web.NewHandler(submissionService, logger, cfg.Avatar.FallbackURL)
	if err != nil {
		logger.Fatal("failed to initialize web handler", "error", err)
	}

	r := router.New(
		handler.NewForm(submissionService, logger),
		handler.NewEcho(),
		handler.NewSession(sessionService, logger),
		handler.NewAuth(authService, logger),
		webHandler,
		middleware.NewAuthenticate(authService, logger),
		logger,
	)

	srv := httpServer.NewHTTPServer(r, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
