package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/recall-stream/internal/cache"
	"github.com/usestring/recall-stream/internal/config"
	"github.com/usestring/recall-stream/internal/logging"
	"github.com/usestring/recall-stream/internal/mcp"
	"github.com/usestring/recall-stream/internal/mcp/tools"
	"github.com/usestring/recall-stream/internal/metrics"
	"github.com/usestring/recall-stream/internal/query"
	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/internal/session"
	"github.com/usestring/recall-stream/pkg/client"
)

// Server is the recall search MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal    *mcp.Server
	transport   client.Transport
	deps        *Deps
	metricsAddr string
	logCleanup  func() error
}

// NewServer creates a new MCP server with builtin recall tools.
//
// t carries the search connection. When t is nil a WebSocket client is built
// from RECALL_WS_URL, RECALL_WS_ORIGIN and DIAL_TIMEOUT_MS.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(t client.Transport, opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	if t == nil {
		t = client.New(cfg.config.ClientOptions()...)
	}

	codes, err := cache.NewCodeCache(cfg.config.QueryCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	m := metrics.New()
	sessOpts := []session.Option{session.WithMetrics(m)}
	if cfg.notifier != nil {
		sessOpts = append(sessOpts, session.WithNotifier(cfg.notifier))
	}
	sess := session.New(t, sessOpts...)

	locale := cfg.locale
	if locale == "" {
		locale = "ja"
	}
	printer := render.NewPrinter(locale)
	queryEngine := query.NewEngine(codes)

	toolDeps := &tools.Deps{
		Session:       sess,
		Query:         queryEngine,
		Printer:       printer,
		Config:        cfg.config,
		Metrics:       m,
		SearchLimiter: cfg.config.SearchLimiter(),
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Session: sess,
		Query:   queryEngine,
		Printer: printer,
		Config:  cfg.config,
		Metrics: m,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	metricsAddr := cfg.config.MetricsAddr
	if cfg.metricsAddr != nil {
		metricsAddr = *cfg.metricsAddr
	}

	return &Server{
		internal:    internal,
		transport:   t,
		deps:        deps,
		metricsAddr: metricsAddr,
		logCleanup:  logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport, plus the metrics endpoint
// when one is configured. The search connection is opened eagerly; if that
// fails, recall_search retries it. Run returns when ctx is cancelled or the
// MCP client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.run(ctx, func(ctx context.Context) error {
		return s.internal.Run(ctx)
	})
}

// RunTransport is Run over an arbitrary MCP transport.
func (s *Server) RunTransport(ctx context.Context, t sdkmcp.Transport) error {
	return s.run(ctx, func(ctx context.Context) error {
		return s.internal.RunTransport(ctx, t)
	})
}

func (s *Server) run(ctx context.Context, serve func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.deps.Session.Start(ctx); err != nil {
		slog.Warn("search backend not reachable, will retry on first search",
			slog.String("error", err.Error()),
		)
	}

	g, gctx := errgroup.WithContext(ctx)

	if s.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.deps.Metrics.Handler())
		httpSrv := &http.Server{
			Addr:              s.metricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("serving metrics", slog.String("addr", s.metricsAddr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving metrics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return httpSrv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return serve(gctx)
	})

	return g.Wait()
}

// Close closes the search connection and flushes logs.
func (s *Server) Close() error {
	var errs []error
	if s.transport != nil {
		if err := s.transport.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing search connection: %w", err))
		}
	}
	if s.logCleanup != nil {
		if err := s.logCleanup(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
