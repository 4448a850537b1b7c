package newsapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/newsreader/headlines/internal/models"
	"github.com/newsreader/headlines/pkg/interceptors"
	"github.com/newsreader/headlines/pkg/log"
	"github.com/newsreader/headlines/pkg/redact"
)

// ResultOK — значение метки result для успешного запроса.
const ResultOK = "ok"

// Recorder принимает наблюдения по каждому запросу (реализация — internal/metrics).
// result — ResultOK или строковое значение Kind.
type Recorder interface {
	ObserveFetch(endpoint, result string, dur time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveFetch(string, string, time.Duration) {}

// Client — конвейер build -> execute -> classify поверх выбранной стратегии исполнения.
type Client struct {
	baseURL  string
	apiKey   string
	exec     Executor
	recorder Recorder
	now      func() time.Time
}

// Option настраивает Client.
type Option func(*Client)

// WithBaseURL переопределяет корень API (по умолчанию DefaultBaseURL).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithExecutor задаёт стратегию исполнения.
func WithExecutor(e Executor) Option {
	return func(c *Client) {
		if e != nil {
			c.exec = e
		}
	}
}

// WithHTTPClient — блокирующее исполнение через указанный клиент.
func WithHTTPClient(hc Doer) Option {
	return func(c *Client) {
		c.exec = NewHTTPExecutor(hc)
	}
}

// WithRecorder подключает сбор метрик.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New создаёт клиента с ключом apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		exec:     NewHTTPExecutor(nil),
		recorder: nopRecorder{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewHTTPClient собирает HTTP-клиент с цепочкой исходящих интерсепторов:
// metadata -> timeout -> logging.
func NewHTTPClient(logger *slog.Logger, userAgent string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: interceptors.Chain(http.DefaultTransport,
			interceptors.WithMetadata(userAgent),
			interceptors.WithTimeout(timeout),
			interceptors.WithLogging(logger),
		),
	}
}

// NewRequest строит GET-запрос с заголовком Authorization.
// Ошибка построения URL — KindURLParsing, сеть при этом не затрагивается.
func (c *Client) NewRequest(ctx context.Context, q models.Query) (*http.Request, error) {
	const op = "newsapi/client/NewRequest"

	u, err := BuildURL(c.baseURL, q)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindURLParsing, Err: err}
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Fetch выполняет запрос q и возвращает статьи в исходном порядке.
// Частичных результатов нет: либо весь список, либо *FetchError.
func (c *Client) Fetch(ctx context.Context, q models.Query) ([]models.Article, error) {
	req, err := c.NewRequest(ctx, q)
	if err != nil {
		c.observe(ctx, q, c.now(), err)
		return nil, err
	}

	start := c.now()
	env, err := c.exec.Execute(ctx, req)

	return c.finish(ctx, q, start, env, err)
}

// FetchResult — итог FetchAsync.
type FetchResult struct {
	Articles []models.Article
	Err      error
}

// FetchAsync — неблокирующий вариант Fetch: тот же построитель запроса и
// классификатор, исполнение через AsyncExecutor поверх стратегии клиента.
// Канал получает ровно один результат и закрывается.
func (c *Client) FetchAsync(ctx context.Context, q models.Query) <-chan FetchResult {
	out := make(chan FetchResult, 1)

	req, err := c.NewRequest(ctx, q)
	if err != nil {
		c.observe(ctx, q, c.now(), err)
		out <- FetchResult{Err: err}
		close(out)
		return out
	}

	start := c.now()
	pending := NewAsyncExecutor(c.exec).Go(ctx, req)

	go func() {
		defer close(out)

		r := <-pending
		articles, err := c.finish(ctx, q, start, r.Envelope, r.Err)
		out <- FetchResult{Articles: articles, Err: err}
	}()

	return out
}

// finish — общий хвост обоих путей: классификация конверта, метрики, лог.
func (c *Client) finish(ctx context.Context, q models.Query, start time.Time, env *models.Envelope, err error) ([]models.Article, error) {
	if err == nil && !env.OK() {
		err = Classify(env)
	}

	c.observe(ctx, q, start, err)
	if err != nil {
		return nil, err
	}

	return env.Articles, nil
}

func (c *Client) observe(ctx context.Context, q models.Query, start time.Time, err error) {
	endpoint := Endpoint(q)
	dur := c.now().Sub(start)

	l := log.From(ctx).With(
		slog.String("endpoint", endpoint),
		slog.String("api_key", redact.APIKey(c.apiKey)),
	)

	if err == nil {
		c.recorder.ObserveFetch(endpoint, ResultOK, dur)
		l.Debug("newsapi_fetch_ok", slog.Duration("dur", dur))
		return
	}

	result := "error"
	var fe *FetchError
	if errors.As(err, &fe) {
		result = string(fe.Kind)
	}

	c.recorder.ObserveFetch(endpoint, result, dur)
	l.Warn("newsapi_fetch_failed",
		slog.String("kind", result),
		slog.String("error", err.Error()),
		slog.Duration("dur", dur),
	)
}
