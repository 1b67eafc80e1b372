package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/exactfit/customer-web/internal/apiclient"
	"github.com/exactfit/customer-web/internal/audit"
	"github.com/exactfit/customer-web/internal/config"
	dbpkg "github.com/exactfit/customer-web/internal/db"
	"github.com/exactfit/customer-web/internal/logging"
	"github.com/exactfit/customer-web/internal/routes"
	"github.com/exactfit/customer-web/internal/session"
	"github.com/exactfit/customer-web/internal/state"
	"github.com/exactfit/customer-web/internal/telemetry"
	"github.com/exactfit/customer-web/internal/upload"
	"github.com/exactfit/customer-web/internal/web"
)

const activityPerPhone = 200

func main() {
	cfg := config.Load()

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup("exactfit-web", logger)

	store, closeStore, err := newStateStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("state store", "backend", cfg.StateBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	blobs, err := newUploadStore(cfg)
	if err != nil {
		logger.Error("upload store", "backend", cfg.UploadBackend, "error", err)
		os.Exit(1)
	}

	sink, err := newActivitySink(cfg, logger)
	if err != nil {
		logger.Error("activity log", "error", err)
		os.Exit(1)
	}
	dispatcher := audit.NewDispatcher(sink, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		logger.Error("templates", "error", err)
		os.Exit(1)
	}
	r.SetHTMLTemplate(tmpl)

	routes.RegisterRoutes(r, cfg, routes.Infra{
		Backend:  apiclient.New(cfg.APIBaseURL, cfg.APITimeout, logger),
		Store:    store,
		Uploader: upload.NewUploader(blobs, logger),
		Sink:     sink,
		Audit:    dispatcher,
		Signer:   session.NewSigner(cfg.SessionSecret, cfg.SessionTTL),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, "exactfit-web"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	dispatcher.Close()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", "error", err)
	}
}

func newStateStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (state.Store, func(), error) {
	switch cfg.StateBackend {
	case "memory", "":
		return state.NewMemoryStoreWithTTL(cfg.SessionTTL), func() {}, nil
	case "redis":
		rs, err := state.NewRedisStore(ctx, cfg.RedisURL, cfg.SessionTTL, logger)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}

func newUploadStore(cfg *config.Config) (upload.Store, error) {
	switch cfg.UploadBackend {
	case "s3", "":
		return upload.NewS3Store(upload.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		}, &http.Client{
			Timeout:   60 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}), nil
	case "cloudinary":
		cs, err := upload.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			return nil, err
		}
		return cs, nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}

// newActivitySink falls back to an in-memory feed when no database is
// configured.
func newActivitySink(cfg *config.Config, logger *slog.Logger) (audit.Sink, error) {
	if cfg.DBUrl == "" {
		logger.Warn("DATABASE_URL not set, activity feed kept in memory")
		return audit.NewMemorySink(activityPerPhone), nil
	}
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	return audit.New(db), nil
}
