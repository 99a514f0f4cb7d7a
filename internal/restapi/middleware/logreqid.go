package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
)

// RequestLogMiddleware logs every request with its response status. Must run after RequestIdMiddleware.
//
// If record is not nil, it is called with method and path of each request before it is handled.
func RequestLogMiddleware(record func(method string, path string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if record != nil {
				record(r.Method, r.URL.Path)
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logging.LoggerFromContext(r.Context()).Info("%s %s -> %d", r.Method, r.URL.Path, ww.Status())
		})
	}
}
