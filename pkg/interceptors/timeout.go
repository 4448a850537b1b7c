package interceptors

import (
	"context"
	"io"
	"net/http"
	"time"
)

// WithTimeout возвращает интерсептор, который ограничивает один исходящий
// запрос временем d. Действует более ранний из двух дедлайнов: родительский
// (например, бюджет входящего HTTP-запроса) или now+d.
//
// Контракт:
//  1. d <= 0 — не модифицирует контекст;
//  2. иначе — оборачивает ctx через context.WithTimeout(ctx, d); cancel вызывается
//     при ошибке транспорта или при закрытии тела ответа, чтобы чтение тела
//     оставалось под тем же дедлайном.
func WithTimeout(d time.Duration) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelBody{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
