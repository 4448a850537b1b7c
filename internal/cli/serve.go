package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	gwhttp "github.com/newsreader/headlines/internal/http"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(flags *rootFlags) *cobra.Command {
	var basePath string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the news HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags.configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			addr := a.cfg.HTTP.Addr()
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				a.log.Error("http_listen_failed", slog.String("addr", addr), slog.String("err", err.Error()))
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			return serve(cmd.Context(), a, ln, normalizeBasePath(basePath))
		},
	}

	c.Flags().StringVar(&basePath, "base-path", "", `Mount the API under a prefix, e.g. "/api" (probes and /metrics stay at the root)`)
	return c
}

// normalizeBasePath приводит префикс к виду "/api": ведущий слэш есть, хвостового нет.
// "" и "/" — API на корне.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}

	return "/" + p
}

// newMux — корневой mux: пробы, /metrics и API (под basePath, если задан).
func newMux(a *app, ready *atomic.Bool, basePath string) *http.ServeMux {
	api := gwhttp.NewRouter(a.news, gwhttp.Options{
		Logger:   a.log,
		Timeout:  a.cfg.Timeouts.Service,
		BasePath: basePath,
		Metrics:  a.metrics,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if ready.Load() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", a.metrics.Handler())
	mux.Handle("/", api)

	return mux
}

// serve обслуживает ln до отмены ctx, затем корректно останавливает сервер.
func serve(ctx context.Context, a *app, ln net.Listener, basePath string) error {
	var ready atomic.Bool

	srv := &http.Server{
		Handler:           newMux(a, &ready, basePath),
		ReadHeaderTimeout: 5 * time.Second,
	}

	a.log.Info("http_listen_start",
		slog.String("addr", ln.Addr().String()),
		slog.String("base_path", basePath),
	)

	serveErrCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	warmUp(ctx, a)

	ready.Store(true)
	a.log.Info("headlines_ready")

	var serveErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown_requested")
	case serveErr = <-serveErrCh:
		if serveErr != nil {
			a.log.Error("http_serve_failed", slog.String("err", serveErr.Error()))
		}
	}

	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		a.log.Info("http_stopped")
	}

	return serveErr
}

// warmUp выполняет стартовую выборку по умолчанию, чтобы /news/current
// сразу отдавал результат. Сбой не мешает старту: он удерживается как результат.
func warmUp(ctx context.Context, a *app) {
	ctx, cancel := context.WithTimeout(a.withLogger(ctx), a.cfg.Timeouts.Service)
	defer cancel()

	if _, err := a.news.Refresh(ctx, a.news.Defaults()); err != nil {
		a.log.Warn("warmup_failed", slog.String("err", err.Error()))
		return
	}

	a.log.Info("warmup_ok")
}
