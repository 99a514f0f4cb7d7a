package restcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	aurestclientapi "github.com/StephanHCB/go-autumn-restclient/api"
	"github.com/tidwall/gjson"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams"
)

type Options struct {
	PluginInfo string
	// Identity signs every request if set
	Identity       *downstreams.Identity
	Timeout        time.Duration
	CircuitBreaker bool
}

type Impl struct {
	client  aurestclientapi.Client
	baseUrl string
}

func New(baseUrl string, opts Options) (Transport, error) {
	if baseUrl == "" {
		return nil, errors.New("bitpay base url not configured")
	}

	breakerName := ""
	if opts.CircuitBreaker {
		breakerName = "bitpay-api-breaker"
	}

	client, err := downstreams.ClientWith(
		downstreams.BitPayRequestManipulator(opts.PluginInfo, opts.Identity),
		breakerName,
		opts.Timeout,
	)
	if err != nil {
		return nil, err
	}

	return NewWithClient(client, baseUrl), nil
}

// NewWithClient uses an already assembled client stack.
func NewWithClient(client aurestclientapi.Client, baseUrl string) Transport {
	return &Impl{
		client:  client,
		baseUrl: strings.TrimSuffix(baseUrl, "/"),
	}
}

func (i *Impl) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	requestUrl := i.baseUrl + path
	if len(query) > 0 {
		requestUrl = requestUrl + "?" + query.Encode()
	}
	return i.perform(ctx, http.MethodGet, requestUrl, nil)
}

func (i *Impl) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	return i.perform(ctx, http.MethodPost, i.baseUrl+path, body)
}

func (i *Impl) Update(ctx context.Context, path string, body []byte) ([]byte, error) {
	return i.perform(ctx, http.MethodPut, i.baseUrl+path, body)
}

func (i *Impl) perform(ctx context.Context, method string, requestUrl string, body []byte) ([]byte, error) {
	var requestBody interface{}
	if body != nil {
		requestBody = json.RawMessage(body)
	}

	// raw bytes, so a body that is not json reaches the mapper instead of failing in the library
	var raw []byte
	response := aurestclientapi.ParsedResponse{
		Body: &raw,
	}
	err := i.client.Perform(ctx, method, requestUrl, requestBody, &response)
	if err != nil {
		if response.Status >= http.StatusMultipleChoices {
			return nil, apierrors.NewAPIError(response.Status, "", http.StatusText(response.Status))
		}
		return nil, downstreams.RedactError(fmt.Errorf("%s %s failed: %w", method, requestUrl, err), requestUrl)
	}

	return UnwrapResponse(response.Status, raw)
}

// UnwrapResponse turns error answers into an apierrors.APIError, and returns the contents
// of the "data" member for successful answers. Bodies without a "data" member are returned as they are.
func UnwrapResponse(status int, raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		if status >= http.StatusMultipleChoices {
			return nil, apierrors.NewAPIError(status, "", statusMessage(status, string(raw)))
		}
		return raw, nil
	}

	parsed := gjson.ParseBytes(raw)
	if err := errorFromBody(status, parsed); err != nil {
		return nil, err
	}
	if status >= http.StatusMultipleChoices {
		return nil, apierrors.NewAPIError(status, "", http.StatusText(status))
	}

	if parsed.IsObject() {
		if data := parsed.Get("data"); data.Exists() {
			return []byte(data.Raw), nil
		}
	}
	return raw, nil
}

func errorFromBody(status int, parsed gjson.Result) error {
	if !parsed.IsObject() {
		return nil
	}

	code := parsed.Get("code").String()
	if parsed.Get("status").String() == "error" {
		return apierrors.NewAPIError(status, code, statusMessage(status, parsed.Get("message").String()))
	}
	if e := parsed.Get("error"); e.Exists() && e.String() != "" {
		return apierrors.NewAPIError(status, code, e.String())
	}
	if errs := parsed.Get("errors"); errs.IsArray() && len(errs.Array()) > 0 {
		messages := make([]string, 0)
		for _, e := range errs.Array() {
			if e.IsObject() {
				msg := e.Get("error").String()
				if param := e.Get("param").String(); param != "" {
					msg = param + ": " + msg
				}
				messages = append(messages, msg)
			} else {
				messages = append(messages, e.String())
			}
		}
		return apierrors.NewAPIError(status, code, strings.Join(messages, "; "))
	}
	return nil
}

func statusMessage(status int, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return http.StatusText(status)
	}
	return message
}
