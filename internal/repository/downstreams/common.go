package downstreams

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	aulogging "github.com/StephanHCB/go-autumn-logging"
	aurestbreaker "github.com/StephanHCB/go-autumn-restclient-circuitbreaker/implementation/breaker"
	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	auresthttpclient "github.com/StephanHCB/go-autumn-restclient/implementation/httpclient"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-http-utils/headers"
	"github.com/google/uuid"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
)

const (
	contentTypeJson = "application/json"

	AcceptVersionHeader = "X-Accept-Version"
	AcceptVersion       = "2.0.0"
	PluginInfoHeader    = "X-BitPay-Plugin-Info"
	IdentityHeader      = "X-Identity"
	SignatureHeader     = "X-Signature"

	DefaultPluginInfo = "reg-bitpay-client"
)

func requestIDFromContext(ctx context.Context) string {
	if reqID := logging.GetRequestID(ctx); reqID != "" {
		return reqID
	}

	return uuid.NewString()
}

// BitPayRequestManipulator sets the headers every BitPay api request needs. If identity
// is not nil, the request is also signed.
func BitPayRequestManipulator(pluginInfo string, identity *Identity) aurestclientapi.RequestManipulatorCallback {
	if pluginInfo == "" {
		pluginInfo = DefaultPluginInfo
	}

	return func(ctx context.Context, r *http.Request) {
		r.Header.Set(headers.ContentType, contentTypeJson)
		r.Header.Set(headers.Accept, contentTypeJson)
		r.Header.Set(AcceptVersionHeader, AcceptVersion)
		r.Header.Set(PluginInfoHeader, pluginInfo)
		r.Header.Set(middleware.RequestIDHeader, requestIDFromContext(ctx))

		if identity != nil {
			body, err := requestBodyOf(r)
			if err != nil {
				logging.LoggerFromContext(ctx).Error("failed to read request body for signing: %s", err.Error())
				return
			}
			r.Header.Set(IdentityHeader, identity.PublicKeyHex())
			r.Header.Set(SignatureHeader, identity.Sign(SigningPayload(r.URL.String(), body)))
		}
	}
}

// SigningPayload is what BitPay expects to be signed: the full url followed by the body.
func SigningPayload(fullUrl string, body []byte) []byte {
	return append([]byte(fullUrl), body...)
}

func requestBodyOf(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if r.GetBody != nil {
		rc, err := r.GetBody()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// ClientWith assembles the client stack. An empty circuitBreakerName means no circuit breaker.
func ClientWith(requestManipulator aurestclientapi.RequestManipulatorCallback, circuitBreakerName string, timeout time.Duration) (aurestclientapi.Client, error) {
	httpClient, err := auresthttpclient.New(timeout, nil, requestManipulator)
	if err != nil {
		return nil, err
	}

	requestLoggingClient := NewRequestLoggingWrapper(httpClient)
	if circuitBreakerName == "" {
		if aulogging.Logger != nil {
			aulogging.Logger.NoCtx().Info().Printf("transport.circuit_breaker is off, BitPay requests are sent without circuit breaker")
		}
		return requestLoggingClient, nil
	}

	breakerTimeout := timeout
	if breakerTimeout <= 0 {
		breakerTimeout = 15 * time.Second
	}

	circuitBreakerClient := aurestbreaker.New(requestLoggingClient,
		circuitBreakerName,
		10,
		2*time.Minute,
		30*time.Second,
		breakerTimeout,
	)

	return circuitBreakerClient, nil
}
