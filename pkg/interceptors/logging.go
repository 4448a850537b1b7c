package interceptors

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/newsreader/headlines/pkg/log"

	"github.com/google/uuid"
)

// WithLogging — логирование исходящих вызовов.
// Поведение:
//   - берёт X-Request-Id из заголовка или контекста (или генерирует новый и добавляет);
//   - добавляет поля method/host/path, прокладывает обогащённый логгер в контекст (pkg/log);
//   - пишет одну финальную запись: msg="http_out", status, dur (Warn при ошибке транспорта).
//
// Безопасность: не логирует query string, тело и заголовок Authorization.
func WithLogging(base *slog.Logger) Interceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = RequestID(r.Context())
			}
			if rid == "" {
				rid = uuid.NewString()
			}
			if r.Header.Get("X-Request-Id") == "" {
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-Id", rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("host", r.URL.Host),
				slog.String("path", r.URL.Path),
			)
			r = r.WithContext(log.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("http_out",
					slog.String("error", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("http_out",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
