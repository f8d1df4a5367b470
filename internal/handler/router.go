package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riteshkumar/finapi/internal/metrics"
	"github.com/riteshkumar/finapi/internal/service"
)

type RouterConfig struct {
	AccountService   service.AccountService
	StatementService service.StatementService
	Metrics          *metrics.Metrics
	TaxIDHeader      string
	AllowedOrigins   []string
	Logger           *slog.Logger
}

// NewRouter wires every route behind recovery, CORS, logging and (when configured) metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	resolver := NewAccountResolver(cfg.AccountService, cfg.TaxIDHeader, cfg.Logger)

	router := mux.NewRouter()

	RootHandler{}.RegisterRoutes(router)
	NewAccountHandler(cfg.AccountService, resolver, cfg.Logger).RegisterRoutes(router)
	NewStatementHandler(cfg.StatementService, resolver, cfg.Logger).RegisterRoutes(router)

	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware)
	}
	router.Use(LoggingMiddleware(cfg.Logger))

	// CORS wraps the router so preflight requests are answered before method matching
	cors := CORSMiddleware(cfg.AllowedOrigins, resolver.Header())
	return RecoveryMiddleware(cfg.Logger)(cors(router))
}
