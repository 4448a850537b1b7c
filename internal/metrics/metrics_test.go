package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	t.Parallel()

	m := New(false)
	m.ObserveFetch("top-headlines", "ok", 120*time.Millisecond)
	m.ObserveFetch("top-headlines", "ok", 80*time.Millisecond)
	m.ObserveFetch("everything", "bad_request", time.Second)

	require.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("top-headlines", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("everything", "bad_request")))
	require.Equal(t, 2, testutil.CollectAndCount(m.fetchDuration))
}

func TestObserveHTTP(t *testing.T) {
	t.Parallel()

	m := New(false)
	m.ObserveHTTP(http.MethodGet, "/news", 200, time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", 404, time.Millisecond)

	require.Equal(t, 1.0, testutil.ToFloat64(m.httpTotal.WithLabelValues("GET", "/news", "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.httpTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler_Exposition(t *testing.T) {
	t.Parallel()

	m := New(true)
	m.ObserveFetch("everything", "ok", time.Millisecond)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)

	out := string(body)
	require.Contains(t, out, `headlines_newsapi_requests_total{endpoint="everything",result="ok"} 1`)
	require.True(t, strings.Contains(out, "go_goroutines"), "runtime collectors expected")
}

func TestRegistry_Lint(t *testing.T) {
	t.Parallel()

	m := New(false)
	m.ObserveFetch("everything", "ok", time.Millisecond)

	problems, err := testutil.GatherAndLint(m.Registry())
	require.NoError(t, err)
	require.Empty(t, problems)
}
