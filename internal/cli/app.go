package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/newsreader/headlines/internal/config"
	"github.com/newsreader/headlines/internal/metrics"
	"github.com/newsreader/headlines/internal/newsapi"
	"github.com/newsreader/headlines/internal/service"
	"github.com/newsreader/headlines/internal/timestamp"
	"github.com/newsreader/headlines/pkg/log"
)

// app — собранные зависимости команд, которым нужен newsapi.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	news    *service.Service
}

// newApp загружает конфигурацию и собирает клиент newsapi и сервис.
// Логи пишутся в logOut: stdout занят выводом команд.
func newApp(configPath string, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	logger := setupLogger(cfg.Env, logOut)
	m := metrics.New(true)

	hc := newsapi.NewHTTPClient(logger, cfg.NewsAPI.UserAgent, cfg.Timeouts.Request)
	opts := []newsapi.Option{
		newsapi.WithBaseURL(cfg.NewsAPI.BaseURL),
		newsapi.WithHTTPClient(hc),
		newsapi.WithRecorder(m),
	}
	if cfg.NewsAPI.Async {
		opts = append(opts, newsapi.WithExecutor(newsapi.NewAsyncExecutor(newsapi.NewHTTPExecutor(hc))))
	}

	client := newsapi.New(cfg.NewsAPI.APIKey, opts...)

	logger.Debug("app_initialized",
		slog.String("env", cfg.Env),
		slog.String("base_url", cfg.NewsAPI.BaseURL),
		slog.Bool("async", cfg.NewsAPI.Async),
	)

	return &app{
		cfg:     cfg,
		log:     logger,
		metrics: m,
		news:    service.New(client, timestamp.NewObserver(nil), cfg.Defaults.Query()),
	}, nil
}

// withLogger кладёт логгер приложения в ctx (его читают сервис и интерсепторы).
func (a *app) withLogger(ctx context.Context) context.Context {
	return log.Into(ctx, a.log)
}

func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
