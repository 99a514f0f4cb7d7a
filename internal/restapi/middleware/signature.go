package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-http-utils/headers"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
)

const (
	identityHeaderKey  = "X-Identity"
	signatureHeaderKey = "X-Signature"
)

// VerifyFunc checks a hex encoded signature over message for the hex encoded public key.
type VerifyFunc func(publicKeyHex string, message []byte, signatureHex string) error

// SignatureMiddleware rejects requests that carry an identity with a missing or wrong signature.
// Requests without identity pass, the facade tokens are checked by the endpoints.
func SignatureMiddleware(verify VerifyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := r.Header.Get(identityHeaderKey)
			if identity == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				unauthorized(w, r, "failed to read request body")
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))

			message := append([]byte(fullUrl(r)), body...)
			if err := verify(identity, message, r.Header.Get(signatureHeaderKey)); err != nil {
				unauthorized(w, r, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func fullUrl(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func unauthorized(w http.ResponseWriter, r *http.Request, details string) {
	logging.LoggerFromContext(r.Context()).Warn("rejected request signature: %s", details)
	w.Header().Set(headers.ContentType, "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":"error","code":"000001","message":"Invalid signature"}`))
}
