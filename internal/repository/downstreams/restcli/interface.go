package restcli

import (
	"context"
	"net/url"
)

// Transport talks to the BitPay REST api.
//
// Paths are relative to the base url and start with a /. Returned bodies are the
// unwrapped "data" member of the response envelope if there is one, the whole body otherwise.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
	Post(ctx context.Context, path string, body []byte) ([]byte, error)

	// Update sends a PUT request.
	Update(ctx context.Context, path string, body []byte) ([]byte, error)
}
