package downstreams

import (
	"context"
	"net/url"
	"strings"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"

	"github.com/eurofurence/reg-bitpay-client/internal/logging"
)

// custom implementation so downstream calls are logged with the request id of the context

type RequestLoggingImpl struct {
	Wrapped aurestclientapi.Client
}

func NewRequestLoggingWrapper(wrapped aurestclientapi.Client) aurestclientapi.Client {
	return &RequestLoggingImpl{
		Wrapped: wrapped,
	}
}

func (c *RequestLoggingImpl) Perform(ctx context.Context, method string, requestUrl string, requestBody interface{}, response *aurestclientapi.ParsedResponse) error {
	before := time.Now()
	err := c.Wrapped.Perform(ctx, method, requestUrl, requestBody, response)
	millis := time.Since(before).Milliseconds()
	if err != nil {
		logging.LoggerFromContext(ctx).Warn("downstream %s %s -> %d FAILED (%d ms): %s", method, redact(requestUrl), response.Status, millis, RedactText(err.Error(), requestUrl))
	} else {
		logging.LoggerFromContext(ctx).Info("downstream %s %s -> %d OK (%d ms)", method, redact(requestUrl), response.Status, millis)
	}
	return err
}

// tokens must not end up in the logs
func redact(requestUrl string) string {
	u, err := url.Parse(requestUrl)
	if err != nil {
		return requestUrl
	}

	query := u.Query()
	if query.Has("token") {
		query.Set("token", "***")
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// RedactText hides the token query parameter of requestUrl wherever it appears in text.
func RedactText(text string, requestUrl string) string {
	u, err := url.Parse(requestUrl)
	if err != nil {
		return text
	}
	token := u.Query().Get("token")
	if token == "" {
		return text
	}

	text = strings.ReplaceAll(text, url.QueryEscape(token), "***")
	return strings.ReplaceAll(text, token, "***")
}

type redactedError struct {
	message string
	cause   error
}

func (e *redactedError) Error() string {
	return e.message
}

func (e *redactedError) Unwrap() error {
	return e.cause
}

// RedactError keeps err unwrappable, but its message no longer contains the token of requestUrl.
func RedactError(err error, requestUrl string) error {
	if err == nil {
		return nil
	}
	return &redactedError{
		message: RedactText(err.Error(), requestUrl),
		cause:   err,
	}
}
