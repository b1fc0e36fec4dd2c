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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	governancehandler "verity/internal/governance/handler"
	"verity/internal/governance/metrics"
	"verity/internal/governance/pipeline"
	"verity/internal/governance/service/authenticity"
	"verity/internal/governance/service/enforcement"
	"verity/internal/governance/service/escalation"
	"verity/internal/governance/service/reputation"
	"verity/internal/governance/service/trust"
	"verity/internal/platform/config"
	"verity/internal/platform/httpserver"
	"verity/internal/platform/logger"
	"verity/pkg/platform/httputil"
	"verity/pkg/platform/middleware/admin"
	"verity/pkg/platform/middleware/request"
	"verity/pkg/platform/middleware/requesttime"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "verity: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	m := metrics.New()
	services, err := buildServices(cfg, log, m, deps)
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(request.RequestID)
	router.Use(requesttime.Middleware)
	router.Get("/health", deps.healthHandler(log))
	router.Handle("/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(cfg.AdminToken, log))
		governancehandler.New(services, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting verity", "addr", cfg.Addr, "stores", deps.storeKind(), "redis_lock", deps.redis != nil, "kafka_audit", cfg.Kafka.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildServices constructs the governance engines over the selected stores.
func buildServices(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, deps *infra) (governancehandler.Services, error) {
	gcfg := cfg.Governance
	st := deps.stores

	reputationSvc, err := reputation.New(st.directory, st.reputation,
		reputation.WithLogger(log), reputation.WithAuditPublisher(deps.audit),
		reputation.WithMetrics(m), reputation.WithConfig(gcfg))
	if err != nil {
		return governancehandler.Services{}, err
	}
	authenticitySvc, err := authenticity.New(st.directory, st.directory, st.reputation, st.authenticity,
		authenticity.WithLogger(log), authenticity.WithAuditPublisher(deps.audit),
		authenticity.WithMetrics(m), authenticity.WithConfig(gcfg))
	if err != nil {
		return governancehandler.Services{}, err
	}
	trustSvc, err := trust.New(st.directory, st.directory, st.authenticity, st.trustLog,
		trust.WithLogger(log), trust.WithAuditPublisher(deps.audit), trust.WithMetrics(m))
	if err != nil {
		return governancehandler.Services{}, err
	}
	enforcementSvc, err := enforcement.New(st.trustLog, st.enforcement,
		enforcement.WithLogger(log), enforcement.WithAuditPublisher(deps.audit),
		enforcement.WithMetrics(m), enforcement.WithConfig(gcfg),
		enforcement.WithLocker(deps.lock),
		enforcement.WithTransactor(deps.tx))
	if err != nil {
		return governancehandler.Services{}, err
	}
	escalationSvc, err := escalation.New(st.escalation,
		escalation.WithLogger(log), escalation.WithAuditPublisher(deps.audit),
		escalation.WithMetrics(m), escalation.WithConfig(gcfg))
	if err != nil {
		return governancehandler.Services{}, err
	}
	hook, err := pipeline.New(trustSvc, enforcementSvc,
		pipeline.WithLogger(log),
		pipeline.WithMetrics(m),
		pipeline.WithAuthenticity(authenticitySvc),
		pipeline.WithReputation(reputationSvc),
		pipeline.WithEscalation(escalationSvc),
	)
	if err != nil {
		return governancehandler.Services{}, err
	}

	return governancehandler.Services{
		Trust:        trustSvc,
		Enforcement:  enforcementSvc,
		Authenticity: authenticitySvc,
		Reputation:   reputationSvc,
		Escalation:   escalationSvc,
		Hook:         hook,
	}, nil
}

func (i *infra) healthHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := i.Health(ctx); err != nil {
			log.WarnContext(ctx, "health check failed", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
