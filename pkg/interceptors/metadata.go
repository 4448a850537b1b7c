package interceptors

import (
	"context"
	"net/http"
)

type CtxKey string

// CtxRequestID — ключ контекста, под которым HTTP-мидлвар кладёт X-Request-Id.
const CtxRequestID CtxKey = "request_id"

// WithRequestID кладёт id запроса в контекст.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxRequestID, id)
}

// RequestID достаёт id запроса из контекста ("" если нет).
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(CtxRequestID).(string)
	return rid
}

// WithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте и ещё не задан),
//   - User-Agent (если передан параметром).
//
// Входящий запрос не модифицируется: заголовки ставятся на клон.
func WithMetadata(userAgent string) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			rid := RequestID(r.Context())
			setRID := rid != "" && r.Header.Get("X-Request-Id") == ""

			if !setRID && userAgent == "" {
				return next.RoundTrip(r)
			}

			r = r.Clone(r.Context())
			if setRID {
				r.Header.Set("X-Request-Id", rid)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
