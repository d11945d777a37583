package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sticker_market/internal/config"
	"sticker_market/internal/handlers"
	"sticker_market/internal/logger"
	"sticker_market/internal/metrics"
	"sticker_market/internal/repository"
	"sticker_market/internal/repository/db"
	"sticker_market/internal/server"
	"sticker_market/internal/service"
	"sticker_market/internal/storage"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title        Sticker Market API
// @version      1.0
// @description  Sticker upload, listing and purchase with an in-account coin balance.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.New(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	if cfg.UsesDevSecret() {
		log.Warnw("auth.secret not set; signing tokens with the development key")
	}
	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	images, closeImages, err := openImageStore(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to init image storage", "backend", cfg.Storage.Backend, "err", err)
	}
	defer closeImages()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, images, service.Options{
		Auth: service.AuthOptions{
			Secret:        cfg.Auth.Secret,
			TokenTTL:      cfg.Auth.TokenTTL,
			BcryptCost:    cfg.Auth.BcryptCost,
			StartingCoins: cfg.Market.StartingCoins,
		},
	})
	apiHandler := handlers.NewHandler(services, log, metrics.New(), handlerOptions(cfg))

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(srv, log)
}

// openImageStore returns the configured backend and a release func.
func openImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, func(), error) {
	if cfg.Storage.Backend == config.BackendGCS {
		client, err := storage.NewGCSClient(ctx, cfg.Storage.GCS.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewGCSStore(client, cfg.Storage.GCS.Bucket, cfg.Storage.GCS.Prefix), func() { _ = client.Close() }, nil
	}
	local, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		return nil, nil, err
	}
	return local, func() {}, nil
}

func handlerOptions(cfg *config.Config) handlers.Options {
	opts := handlers.Options{
		PublicPath:     cfg.Storage.PublicPath,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		CORSOrigins:    cfg.CORS.Origins,
		WSInterval:     cfg.WS.DefaultInterval,
	}
	// GCS objects are served by the bucket
	if cfg.Storage.Backend == config.BackendLocal {
		opts.UploadDir = cfg.Storage.UploadDir
	}
	return opts
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
