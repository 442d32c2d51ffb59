package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ffaiyaz23/memerelay/internal/config"
	"github.com/ffaiyaz23/memerelay/internal/memegen"
	"github.com/ffaiyaz23/memerelay/internal/otel"
	"github.com/ffaiyaz23/memerelay/internal/slack"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	// 0) Initialize Zap logger and replace globals
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// 1) Load configuration
	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalw("configuration error", "error", err)
	}

	// 2) Initialize OpenTelemetry tracing
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	tp, err := otel.InitTracer(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		zap.S().Fatalw("failed to init OTEL", "error", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	// 3) Auto-start mock memegenerator if asked to
	apiURL := cfg.APIURL
	if cfg.MockAPI {
		server, addr, err := memegen.StartMockServer("127.0.0.1:0")
		if err != nil {
			zap.S().Fatalw("mock memegenerator failed", "error", err)
		}
		defer server.Close()
		apiURL = "http://" + addr
	}
	zap.S().Infow("using memegenerator", "url", apiURL, "username", cfg.Username, "timeout", cfg.Timeout)

	// 4) Wire up the slash command endpoint (instrumented with otelhttp)
	gen := memegen.NewClient(apiURL, memegen.Credentials{Username: cfg.Username, Password: cfg.Password}, cfg.Timeout)
	commands := slack.Routes(slack.CommandHandler(gen, cfg.SigningSecret, memegen.DefaultImageID))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(commands, "SlashCommand"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Timeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 5) Start HTTP server
	errCh := make(chan error, 1)
	go func() {
		zap.S().Infow("listening for slash commands", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Errorw("HTTP server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		zap.S().Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorw("shutdown error", "error", err)
		}
	}
}
