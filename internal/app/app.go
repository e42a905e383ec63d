package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/reelhost/timeline-engine/internal/controller"
	"github.com/reelhost/timeline-engine/internal/engine"
	projectRedis "github.com/reelhost/timeline-engine/internal/repository/project/redis"
	"github.com/reelhost/timeline-engine/internal/repository/session/inmemory"
	"github.com/reelhost/timeline-engine/internal/service/session"
	"github.com/reelhost/timeline-engine/pkg/ctxlogger"
	"github.com/reelhost/timeline-engine/pkg/redisclient"
)

// AppConfig is the process-level configuration, the counterpart of the
// teacher's room/member/playlist limits generalized to a single-session
// engine's knobs.
type AppConfig struct {
	Secret          string  `json:"-"`
	Host            string  `json:"host"`
	Port            int     `json:"port"`
	LogLevel        string  `json:"log_level"`
	RedisPort       int     `json:"redis_port"`
	RedisHost       string  `json:"redis_host"`
	RedisPassword   string  `json:"-"`
	SnapThresholdPx float64 `json:"snap_threshold_px"`
	MinTimelineLen  float64 `json:"min_timeline_len"`
	MinTimelinePad  float64 `json:"min_timeline_pad"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.Secret == "" {
		return fmt.Errorf("secret must not be empty")
	}
	if cfg.SnapThresholdPx <= 0 {
		return fmt.Errorf("snap threshold must be greater than 0")
	}
	return nil
}

func Run(ctx context.Context, cfg *AppConfig) error {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	projectRepo := projectRedis.NewRepo(rc, 24*14*time.Hour)
	sessionRegistry := inmemory.NewRepo()
	sessionService := session.NewService(projectRepo, sessionRegistry, &session.Config{
		Secret:     cfg.Secret,
		SessionExp: 24 * time.Hour,
		EngineConfig: engine.Config{
			SnapThresholdPx: cfg.SnapThresholdPx,
			MinTimelineLen:  cfg.MinTimelineLen,
			MinTimelinePad:  cfg.MinTimelinePad,
		},
	}, logger)

	ctrl := controller.NewController(sessionService, sessionRegistry, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: ctrl.GetMux()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	slog.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
