package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/newsreader/headlines/internal/models"
)

// maxBodyBytes ограничивает размер читаемого ответа.
const maxBodyBytes = 8 << 20

// Executor — стратегия исполнения запроса: отправить, прочитать и декодировать конверт.
// Классификация статуса конверта — забота вызывающего (Client).
type Executor interface {
	Execute(ctx context.Context, req *http.Request) (*models.Envelope, error)
}

// Doer — минимальный контракт *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPExecutor — блокирующее исполнение через HTTP-клиент.
type HTTPExecutor struct {
	client Doer
}

// NewHTTPExecutor создаёт исполнитель. client == nil — http.DefaultClient.
func NewHTTPExecutor(client Doer) *HTTPExecutor {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPExecutor{client: client}
}

// Execute выполняет запрос и декодирует конверт.
//
// Ошибки:
//   - транспорт (DNS, TLS, соединение, дедлайн ctx) — KindRequestFailed;
//   - тело не JSON или не соответствует схеме — KindFailedResponseToJSON.
//
// HTTP-статус не проверяется: newsapi отдаёт ошибки в теле с 4xx/5xx,
// и такие конверты классифицируются как обычные.
func (e *HTTPExecutor) Execute(ctx context.Context, req *http.Request) (*models.Envelope, error) {
	const op = "newsapi/executor/HTTPExecutor.Execute"

	resp, err := e.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindRequestFailed, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindRequestFailed, Err: err}
	}

	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, &FetchError{Op: op, Kind: KindFailedResponseToJSON, Err: fmt.Errorf("http %d: %w", resp.StatusCode, err)}
	}

	return env, nil
}

// errSchema — тело разобралось как JSON, но нарушает схему конверта.
var errSchema = errors.New("envelope schema mismatch")

type wireArticle struct {
	Author      *string `json:"author"`
	Content     *string `json:"content"`
	Description *string `json:"description"`
	Title       *string `json:"title"`
	URL         *string `json:"url"`
	PublishedAt *string `json:"publishedAt"`
}

type wireEnvelope struct {
	Status   *string        `json:"status"`
	Code     *string        `json:"code"`
	Message  *string        `json:"message"`
	Articles *[]wireArticle `json:"articles"`
}

// DecodeEnvelope разбирает тело ответа и проверяет обязательные поля:
// status всегда; для status == "ok" — articles и у каждой статьи title, url, publishedAt.
func DecodeEnvelope(body []byte) (*models.Envelope, error) {
	const op = "newsapi/executor/DecodeEnvelope"

	var w wireEnvelope
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if w.Status == nil {
		return nil, fmt.Errorf("%s: missing field `status`: %w", op, errSchema)
	}

	env := &models.Envelope{Status: *w.Status, Code: w.Code, Message: w.Message}
	if !env.OK() {
		return env, nil
	}

	if w.Articles == nil {
		return nil, fmt.Errorf("%s: missing field `articles`: %w", op, errSchema)
	}

	env.Articles = make([]models.Article, 0, len(*w.Articles))
	for i, a := range *w.Articles {
		switch {
		case a.Title == nil:
			return nil, fmt.Errorf("%s: article %d: missing field `title`: %w", op, i, errSchema)
		case a.URL == nil:
			return nil, fmt.Errorf("%s: article %d: missing field `url`: %w", op, i, errSchema)
		case a.PublishedAt == nil:
			return nil, fmt.Errorf("%s: article %d: missing field `publishedAt`: %w", op, i, errSchema)
		}

		env.Articles = append(env.Articles, models.Article{
			Author:      a.Author,
			Content:     a.Content,
			Description: a.Description,
			Title:       *a.Title,
			URL:         *a.URL,
			PublishedAt: *a.PublishedAt,
		})
	}

	return env, nil
}

// Result — итог асинхронного исполнения.
type Result struct {
	Envelope *models.Envelope
	Err      error
}

// AsyncExecutor исполняет запрос вложенного Executor в отдельной горутине.
type AsyncExecutor struct {
	inner Executor
}

// NewAsyncExecutor оборачивает inner (nil — HTTPExecutor с http.DefaultClient).
func NewAsyncExecutor(inner Executor) *AsyncExecutor {
	if inner == nil {
		inner = NewHTTPExecutor(nil)
	}

	return &AsyncExecutor{inner: inner}
}

// Go запускает исполнение и сразу возвращает канал с единственным результатом.
// Канал буферизован: горутина не блокируется, даже если результат никто не прочитает.
func (a *AsyncExecutor) Go(ctx context.Context, req *http.Request) <-chan Result {
	out := make(chan Result, 1)

	go func() {
		defer close(out)

		env, err := a.inner.Execute(ctx, req)
		out <- Result{Envelope: env, Err: err}
	}()

	return out
}

// Execute ждёт результата Go или отмены ctx.
func (a *AsyncExecutor) Execute(ctx context.Context, req *http.Request) (*models.Envelope, error) {
	const op = "newsapi/executor/AsyncExecutor.Execute"

	select {
	case r := <-a.Go(ctx, req):
		return r.Envelope, r.Err
	case <-ctx.Done():
		return nil, &FetchError{Op: op, Kind: KindRequestFailed, Err: ctx.Err()}
	}
}
