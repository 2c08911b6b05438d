// Command shiftcal serves personal work-shift calendars. It authenticates the
// configured Manus accounts, keeps their tokens fresh on a fixed cadence, and
// exposes one iCalendar feed per account at GET /{username}.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/shift-calendar/internal/account"
	"github.com/example/shift-calendar/internal/calendar"
	"github.com/example/shift-calendar/internal/config"
	httptransport "github.com/example/shift-calendar/internal/http"
	"github.com/example/shift-calendar/internal/manus"
	"github.com/example/shift-calendar/internal/manustime"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A .env file is optional; the environment wins when both are present.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded configuration", "credentials", len(cfg.Credentials), "port", cfg.HTTPPort)

	codec, err := manustime.NewCodec(cfg.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	client := manus.NewClient(cfg.ManusBaseURL, nil)

	registry := account.NewRegistry(client, logger)
	registry.Initialize(ctx, cfg.Credentials)
	go registry.RunRefreshLoop(ctx, cfg.RefreshInterval)

	synthesizer := calendar.NewSynthesizer(client, codec, time.Now, logger)
	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Calendar:   httptransport.NewCalendarHandler(registry, synthesizer, logger),
		Middleware: []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("shift calendar listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
