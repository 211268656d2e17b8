package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/markbook/api/grades"
	"github.com/kilianp07/markbook/config"
	"github.com/kilianp07/markbook/core/grading"
	"github.com/kilianp07/markbook/core/history"
	coremetrics "github.com/kilianp07/markbook/core/metrics"
	coremon "github.com/kilianp07/markbook/core/monitoring"
	"github.com/kilianp07/markbook/core/pipeline"
	"github.com/kilianp07/markbook/infra/logger"
	_ "github.com/kilianp07/markbook/infra/metrics"
	"github.com/kilianp07/markbook/infra/monitoring"
)

// Service wires the grading pipeline to the stores and sinks selected by
// configuration.
type Service struct {
	Config   *config.Config
	Engine   *grading.Engine
	Pipeline *pipeline.Pipeline
	History  history.Store
	Sink     coremetrics.MetricsSink
	Monitor  coremon.Monitor
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logg := logger.New("service")

	engine, err := grading.NewEngine(cfg.Grading, logger.New("grading"))
	if err != nil {
		return nil, fmt.Errorf("grading engine: %w", err)
	}
	store, err := history.New(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("sentry: %w", err)
	}

	p := pipeline.New(engine, cfg.Validation,
		pipeline.WithHistory(store),
		pipeline.WithMetrics(sink),
		pipeline.WithMonitor(mon),
		pipeline.WithLogger(logger.New("pipeline")),
	)
	return &Service{
		Config:   cfg,
		Engine:   engine,
		Pipeline: p,
		History:  store,
		Sink:     sink,
		Monitor:  mon,
		log:      logg,
	}, nil
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	return grades.NewRouter(s.Pipeline, s.History, grades.Options{
		Metrics:      promhttp.Handler(),
		MaxBodyBytes: s.Config.Serve.MaxBodyBytes,
		Token:        s.Config.Serve.Token,
		Logger:       logger.New("http"),
	})
}

// Serve runs the HTTP API until the context is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.Serve.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		defer s.Monitor.Recover()
		s.log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	if c, ok := s.Sink.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	errs = append(errs, s.History.Close())
	s.Monitor.Flush(2 * time.Second)
	return errors.Join(errs...)
}
