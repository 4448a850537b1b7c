package middleware

import (
	"net/http"
	"time"
)

// HTTPObserver принимает наблюдения по обработанным запросам (internal/metrics).
type HTTPObserver interface {
	ObserveHTTP(method, route string, code int, dur time.Duration)
}

// Metrics учитывает запрос под шаблоном маршрута chi ("/news/current/{index}"),
// а не под сырым путём.
func Metrics(obs HTTPObserver) Middleware {
	return func(next http.Handler) http.Handler {
		if obs == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			obs.ObserveHTTP(r.Method, routePattern(r), sw.code(), time.Since(start))
		})
	}
}
