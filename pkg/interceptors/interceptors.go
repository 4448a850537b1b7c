// interceptors предоставляет набор интерсепторов исходящих HTTP-вызовов
// (обёрток над http.RoundTripper) для клиентов внешних API.
package interceptors

import (
	"net/http"
)

// RoundTripperFunc — адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Interceptor — обёртка над транспортом.
type Interceptor func(http.RoundTripper) http.RoundTripper

// Chain оборачивает base интерсепторами; первый в списке выполняется первым.
// base == nil — http.DefaultTransport.
func Chain(base http.RoundTripper, ics ...Interceptor) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	for i := len(ics) - 1; i >= 0; i-- {
		base = ics[i](base)
	}

	return base
}
