package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/StudyGarden_Go/internal/accrual"
	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/economy"
	"github.com/osse101/StudyGarden_Go/internal/eventlog"
	"github.com/osse101/StudyGarden_Go/internal/garden"
	"github.com/osse101/StudyGarden_Go/internal/handler"
	"github.com/osse101/StudyGarden_Go/internal/inventory"
	"github.com/osse101/StudyGarden_Go/internal/leaderboard"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/lootbox"
	"github.com/osse101/StudyGarden_Go/internal/metrics"
	"github.com/osse101/StudyGarden_Go/internal/timer"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// Config holds the transport settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	TimerBounds    handler.DurationBounds
	RateLimits     RateLimits
}

// Services are the domain services exposed over HTTP
type Services struct {
	Timer       timer.Service
	Accrual     accrual.Service
	Wallet      wallet.Service
	Inventory   inventory.Service
	Economy     economy.Service
	Lootbox     lootbox.Service
	Garden      garden.Service
	Leaderboard leaderboard.Service
	EventLog    eventlog.Service
}

type Server struct {
	httpServer *http.Server
}

// NewServer builds the router. store may be nil for backends without a
// connectivity check.
func NewServer(cfg Config, svcs Services, store handler.Pinger, clk clock.Clock) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, svcs, store, clk),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter wires middleware and routes
func NewRouter(cfg Config, svcs Services, store handler.Pinger, clk clock.Clock) http.Handler {
	r := chi.NewRouter()

	if cfg.APIKey == "" {
		slog.Warn(LogMsgAuthDisabled)
	}

	limits := cfg.RateLimits
	if limits.Window == 0 {
		limits = DefaultRateLimits()
	}
	detector := NewSuspiciousActivityDetector(clk, limits)

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	r.Use(RateLimitMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))
	r.Handle("/metrics", promhttp.Handler())

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(handler.RequireUser)

		r.Route("/timer", func(r chi.Router) {
			r.Post("/start", handler.HandleStartTimer(svcs.Timer, cfg.TimerBounds))
			r.Post("/stop", handler.HandleStopTimer(svcs.Timer, svcs.Accrual))
			r.Get("/sessions", handler.HandleListSessions(svcs.Timer))
			r.Post("/sessions/{"+handler.URLParamSessionID+"}/credit", handler.HandleCreditSession(svcs.Timer, svcs.Accrual))
			r.Get("/totals", handler.HandleStudyTotals(svcs.Timer))
		})

		r.Get("/wallet", handler.HandleGetWallet(svcs.Wallet))
		r.Get("/wallet/ledger", handler.HandleGetLedger(svcs.Wallet))
		r.Get("/inventory", handler.HandleGetInventory(svcs.Inventory))

		r.Route("/shop", func(r chi.Router) {
			r.Get("/prices", handler.HandleGetPrices(svcs.Economy))
			r.Post("/purchase", handler.HandlePurchase(svcs.Economy))
		})

		r.Post("/packs/open", handler.HandleOpenPack(svcs.Lootbox))

		r.Route("/garden", func(r chi.Router) {
			r.Get("/", handler.HandleGetGarden(svcs.Garden))
			r.Post("/plant", handler.HandlePlant(svcs.Garden))
			r.Post("/harvest", handler.HandleHarvest(svcs.Garden))
		})

		r.Get("/leaderboard/study", handler.HandleStudyLeaderboard(svcs.Leaderboard))
		r.Get("/events", handler.HandleRecentEvents(svcs.EventLog))
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
