package reportserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Config captures the settings for serving run reports.
type Config struct {
	Addr string
	// OutputDir is the results root holding <benchmark>/<run_id> directories.
	OutputDir     string
	DBPath        string
	AssetsBaseURL string
	Logger        *zap.Logger
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

const shutdownTimeout = 5 * time.Second

// Serve hosts the report UI and data endpoints until ctx is cancelled.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	addr := listener.Addr().String()
	logger.Info("report server listening", zap.String("addr", addr), zap.String("output_dir", cfg.OutputDir), zap.Bool("warehouse", cfg.DBPath != ""))
	if cfg.Ready != nil {
		cfg.Ready(addr)
	}

	server := &http.Server{
		Handler:           logRequests(logger, handler),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("report server stopping", zap.String("addr", addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}

// logRequests records each request at debug level.
func logRequests(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Duration("elapsed", time.Since(started)))
	})
}
