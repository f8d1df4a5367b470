package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/riteshkumar/finapi/internal/handler"
	"github.com/riteshkumar/finapi/internal/metrics"
	"github.com/riteshkumar/finapi/internal/repository"
	"github.com/riteshkumar/finapi/internal/service"
)

const shutdownTimeout = 30 * time.Second

type Config struct {
	ServerPort     string
	TaxIDHeader    string
	AllowedOrigins []string
	MetricsAddr    string
	LogLevel       slog.Level
	Location       *time.Location
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on system env vars")
	}

	// Load configuration
	config, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	// Initialise logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.LogLevel,
	}))
	slog.SetDefault(logger)

	ln, err := net.Listen("tcp", ":"+config.ServerPort)
	if err != nil {
		logger.Error("failed to listen", "port", config.ServerPort, "error", err.Error())
		os.Exit(1)
	}

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger, ln); err != nil {
		logger.Error("server stopped with error", "error", err.Error())
		os.Exit(1)
	}

	logger.Info("server exited gracefully")
}

// run serves the API on ln until ctx is done, then shuts down within shutdownTimeout.
func run(ctx context.Context, config Config, logger *slog.Logger, ln net.Listener) error {
	// Initialise store
	accountRepo := repository.NewAccountRepository()

	m := metrics.New(func() float64 {
		return float64(accountRepo.Count(context.Background()))
	})

	// Initialise services
	accountService := service.NewAccountService(accountRepo, m, logger)
	statementService := service.NewStatementService(accountRepo, m, logger, service.WithLocation(config.Location))

	// Setup router
	router := handler.NewRouter(handler.RouterConfig{
		AccountService:   accountService,
		StatementService: statementService,
		Metrics:          m,
		TaxIDHeader:      config.TaxIDHeader,
		AllowedOrigins:   config.AllowedOrigins,
		Logger:           logger,
	})

	// Create HTTP servers
	servers := []*http.Server{newHTTPServer(ln.Addr().String(), router)}
	listeners := []net.Listener{ln}

	if config.MetricsAddr != "" {
		metricsLn, err := net.Listen("tcp", config.MetricsAddr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("failed to listen for metrics: %w", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		servers = append(servers, newHTTPServer(metricsLn.Addr().String(), mux))
		listeners = append(listeners, metricsLn)
	}

	// Start servers in go routines
	errCh := make(chan error, len(servers))
	for i, srv := range servers {
		go func(srv *http.Server, ln net.Listener) {
			logger.Info("starting server", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
				return
			}
			errCh <- nil
		}(srv, listeners[i])
	}

	var serveErr error
	received := 0
	select {
	case <-ctx.Done():
		logger.Info("shutting down server...")
	case serveErr = <-errCh:
		received++
		logger.Error("server failed", "error", serveErr)
	}

	// Create context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "addr", srv.Addr, "error", err.Error())
			serveErr = errors.Join(serveErr, err)
		}
	}

	// every serve goroutine reports exactly once
	for ; received < len(servers); received++ {
		if err := <-errCh; err != nil {
			serveErr = errors.Join(serveErr, err)
		}
	}

	return serveErr
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// loads config from environment variables
func loadConfig() (Config, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return Config{}, fmt.Errorf("TIMEZONE: %w", err)
	}

	return Config{
		ServerPort:     getEnv("SERVER_PORT", "3333"),
		TaxIDHeader:    getEnv("TAX_ID_HEADER", handler.DefaultTaxIDHeader),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
		LogLevel:       level,
		Location:       loc,
	}, nil
}

// getEnv fetches environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
