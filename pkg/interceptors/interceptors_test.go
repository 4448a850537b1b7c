package interceptors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/newsreader/headlines/pkg/log"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Пакет unit-тестов для pkg/interceptors (metadata.go, timeout.go, logging.go).

// capHandler — минимальный slog.Handler для захвата последней записи
// и всех атрибутов. Дополнительно ведёт счётчик сообщений по тексту.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

// okTransport отвечает 204 и запоминает последний запрос.
type okTransport struct {
	last *http.Request
}

func (t *okTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.last = r
	return &http.Response{
		StatusCode: http.StatusNoContent,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     http.Header{},
		Request:    r,
	}, nil
}

func newReq(t *testing.T, ctx context.Context) *http.Request {
	t.Helper()

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://newsapi.org/v2/everything?q=go", nil)
	require.NoError(t, err)
	return r
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Interceptor {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Chain(&okTransport{}, mk("a"), mk("b"), mk("c"))
	resp, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestWithMetadata_SetsHeaders(t *testing.T) {
	t.Parallel()

	base := &okTransport{}
	rt := Chain(base, WithMetadata("headlines"))

	in := newReq(t, WithRequestID(context.Background(), "rid-123"))
	resp, err := rt.RoundTrip(in)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "rid-123", base.last.Header.Get("X-Request-Id"))
	require.Equal(t, "headlines", base.last.Header.Get("User-Agent"))
	require.Empty(t, in.Header.Get("X-Request-Id"), "original request must not be mutated")
}

func TestWithMetadata_SkipEmptyValues(t *testing.T) {
	t.Parallel()

	base := &okTransport{}
	rt := Chain(base, WithMetadata(""))

	in := newReq(t, context.Background())
	resp, err := rt.RoundTrip(in)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Same(t, in, base.last)
	require.Empty(t, base.last.Header.Get("X-Request-Id"))
}

func TestWithMetadata_KeepsExplicitHeader(t *testing.T) {
	t.Parallel()

	base := &okTransport{}
	rt := Chain(base, WithMetadata(""))

	in := newReq(t, WithRequestID(context.Background(), "from-ctx"))
	in.Header.Set("X-Request-Id", "explicit")
	resp, err := rt.RoundTrip(in)
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "explicit", base.last.Header.Get("X-Request-Id"))
}

func TestRequestID_Missing(t *testing.T) {
	t.Parallel()

	require.Empty(t, RequestID(context.Background()))
	require.Equal(t, "x", RequestID(WithRequestID(context.Background(), "x")))
}

func TestWithTimeout_SetsDeadline_AndTransportSeesDeadlineExceeded(t *testing.T) {
	t.Parallel()

	const d = 40 * time.Millisecond

	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	}), WithTimeout(d))

	start := time.Now()
	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), d)
}

func TestWithTimeout_EarlierParentDeadlineWins(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	parentDL, ok := parent.Deadline()
	require.True(t, ok)

	var childDL time.Time
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		var ok bool
		childDL, ok = r.Context().Deadline()
		require.True(t, ok)
		return (&okTransport{}).RoundTrip(r)
	}), WithTimeout(time.Second))

	resp, err := rt.RoundTrip(newReq(t, parent))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

// Бюджет входящего запроса (15s) не отменяет таймаут одного исходящего вызова.
func TestWithTimeout_ShorterThanParentDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	const d = 50 * time.Millisecond

	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		select {
		case <-r.Context().Done():
			return nil, r.Context().Err()
		case <-time.After(300 * time.Millisecond):
			return (&okTransport{}).RoundTrip(r)
		}
	}), WithTimeout(d))

	start := time.Now()
	_, err := rt.RoundTrip(newReq(t, parent))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), 300*time.Millisecond)
	require.NoError(t, parent.Err(), "parent context must stay alive")
}

func TestWithTimeout_ZeroDuration_PassThrough(t *testing.T) {
	t.Parallel()

	var hasDL bool
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		_, hasDL = r.Context().Deadline()
		return (&okTransport{}).RoundTrip(r)
	}), WithTimeout(0))

	resp, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.False(t, hasDL, "no deadline expected when d <= 0")
}

func TestWithTimeout_BodyReadableUntilClose(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	client := &http.Client{Transport: Chain(http.DefaultTransport, WithTimeout(time.Second))}

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, `{"status":"ok"}`, string(b))
	require.NoError(t, resp.Body.Close())
}

func TestWithLogging_LogsAndPutsLoggerIntoContext(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	base := slog.New(h)

	var seenRID string
	rt := Chain(RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seenRID = r.Header.Get("X-Request-Id")
		log.From(r.Context()).Info("probe", slog.String("ok", "1"))
		return (&okTransport{}).RoundTrip(r)
	}), WithLogging(base))

	resp, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, 1, h.count["probe"])
	require.Equal(t, "http_out", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, int64(http.StatusNoContent), h.attrs["status"])
	require.Equal(t, "newsapi.org", h.attrs["host"])
	require.Equal(t, "/v2/everything", h.attrs["path"])

	_, err = uuid.Parse(seenRID)
	require.NoError(t, err, "generated request id must be a uuid")
	require.Equal(t, seenRID, h.attrs["request_id"])
}

func TestWithLogging_UsesContextRequestID(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := Chain(&okTransport{}, WithLogging(slog.New(h)))

	resp, err := rt.RoundTrip(newReq(t, WithRequestID(context.Background(), "rid-ctx")))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Equal(t, "rid-ctx", h.attrs["request_id"])
}

func TestWithLogging_TransportError(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	boom := errors.New("dial tcp: connection refused")
	rt := Chain(RoundTripperFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}), WithLogging(slog.New(h)))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.ErrorIs(t, err, boom)
	require.Equal(t, "http_out", h.lastMsg)
	require.Equal(t, slog.LevelWarn, h.lastLvl)
	require.Equal(t, boom.Error(), h.attrs["error"])
}
