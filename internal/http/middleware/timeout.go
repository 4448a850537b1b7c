package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	apierrors "github.com/newsreader/headlines/internal/errors"
	logctx "github.com/newsreader/headlines/pkg/log"
)

// Timeout ограничивает обработку запроса временем d: действует более ранний
// из дедлайнов родителя и now+d. Если к истечению дедлайна обработчик ничего
// не записал, клиент получает 504 deadline_exceeded в формате apierrors.
// Значение <=0 делает мидлвар no-op.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))

			if sw.status != 0 || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return
			}

			logctx.From(ctx).Warn("http_timeout",
				slog.String("path", r.URL.Path),
				slog.Duration("timeout", d),
			)
			apierrors.WriteError(sw, r, ctx.Err())
		})
	}
}
