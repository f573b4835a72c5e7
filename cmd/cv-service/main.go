package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/cv-service/internal/completion"
	"github.com/pribylovaa/cv-service/internal/config"
	"github.com/pribylovaa/cv-service/internal/events"
	"github.com/pribylovaa/cv-service/internal/identity"
	"github.com/pribylovaa/cv-service/internal/service"
	"github.com/pribylovaa/cv-service/internal/speech"
	"github.com/pribylovaa/cv-service/internal/storage"
	"github.com/pribylovaa/cv-service/internal/storage/gcs"
	"github.com/pribylovaa/cv-service/internal/storage/minio"
	"github.com/pribylovaa/cv-service/internal/storage/mongo"
	cvhttp "github.com/pribylovaa/cv-service/internal/transport/http"
	"github.com/pribylovaa/cv-service/internal/transport/http/handlers"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting cv-service", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	initCtx, initCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer initCancel()

	db, err := mongo.New(initCtx, cfg)
	if err != nil {
		log.Error("mongo_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := db.Close(ctx); cerr != nil {
			log.Warn("mongo_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	log.Info("mongo_connected")

	photos, closePhotos, err := setupPhotos(initCtx, cfg.Blob)
	if err != nil {
		log.Error("blob_init_failed", slog.String("backend", cfg.Blob.Backend), slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer closePhotos()

	log.Info("blob_initialized", slog.String("backend", cfg.Blob.Backend))

	pub := events.Publisher(events.Noop{})
	if cfg.Redis.URL != "" {
		pub, err = events.NewRedis(initCtx, cfg.Redis.URL, cfg.Redis.Channel)
		if err != nil {
			log.Error("redis_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		log.Info("redis_connected", slog.String("channel", cfg.Redis.Channel))
	}

	defer func() {
		if cerr := pub.Close(); cerr != nil {
			log.Warn("redis_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	improver, err := completion.New(initCtx, cfg.AI)
	if err != nil {
		log.Error("completion_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("completion_initialized", slog.String("strategy", improver.Strategy()))

	recognizer, err := speech.NewGemini(initCtx, cfg.AI)
	if err != nil {
		log.Error("speech_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	sessions := service.NewSessions(db, service.WithPublisher(pub))
	go sessions.RunEviction(rootCtx, cfg.Sessions.IdleTTL)

	deps := handlers.Deps{
		Sessions:      sessions,
		Profiles:      service.NewProfiles(db, photos),
		Improver:      improver,
		Recognizer:    recognizer,
		MaxPhotoBytes: cfg.Photo.MaxSizeBytes,
	}

	apiHandler := cvhttp.NewRouter(deps, cvhttp.Options{
		Logger:        log,
		Timeout:       cfg.Timeouts.Service,
		StreamTimeout: cfg.Timeouts.Stream,
		Verifier:      identity.NewVerifier(cfg.Auth),
	})

	var ready int32 // 0 - not ready; 1 - ready

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if atomic.LoadInt32(&ready) != 1 {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "mongo unavailable", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Handle("/", apiHandler)

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	atomic.StoreInt32(&ready, 1)
	log.Info("service_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	log.Info("service_stopped")
}

// setupPhotos выбирает blob-хранилище фото по cfg.Backend.
func setupPhotos(ctx context.Context, cfg config.BlobConfig) (storage.PhotoStorage, func(), error) {
	switch cfg.Backend {
	case config.BlobMinio:
		s, err := minio.New(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case config.BlobGCS:
		s, err := gcs.New(ctx, cfg.GCS)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Warn("gcs_close_failed", slog.String("err", err.Error()))
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown blob backend %q", cfg.Backend)
	}
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
