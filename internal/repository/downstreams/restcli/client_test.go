package restcli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/repository/downstreams"
)

type recordedRequest struct {
	method string
	uri    string
	body   string
	header http.Header
}

func tstServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	recorded := make([]recordedRequest, 0)
	handler := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded = append(recorded, recordedRequest{
			method: r.Method,
			uri:    r.URL.RequestURI(),
			body:   string(body),
			header: r.Header.Clone(),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}

	router := chi.NewRouter()
	router.Get("/*", handler)
	router.Post("/*", handler)
	router.Put("/*", handler)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, &recorded
}

func tstTransport(t *testing.T, baseUrl string, identity *downstreams.Identity) Transport {
	transport, err := New(baseUrl, Options{Identity: identity, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return transport
}

func TestGetUnwrapsData(t *testing.T) {
	server, recorded := tstServer(t, http.StatusOK, `{"facade":"merchant/subscription","data":{"id":"abc"}}`)
	transport := tstTransport(t, server.URL, nil)

	body, err := transport.Get(context.Background(), "/subscriptions/abc", url.Values{"token": []string{"t0k"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"abc"}`, string(body))

	require.Len(t, *recorded, 1)
	r := (*recorded)[0]
	require.Equal(t, http.MethodGet, r.method)
	require.Equal(t, "/subscriptions/abc?token=t0k", r.uri)
	require.Equal(t, "2.0.0", r.header.Get(downstreams.AcceptVersionHeader))
	require.NotEmpty(t, r.header.Get("X-Request-Id"))
}

func TestGetEmptyListData(t *testing.T) {
	server, _ := tstServer(t, http.StatusOK, `{"facade":"merchant/subscription","data":[]}`)
	transport := tstTransport(t, server.URL, nil)

	body, err := transport.Get(context.Background(), "/subscriptions", nil)
	require.NoError(t, err)
	require.Equal(t, `[]`, string(body))
}

func TestPostAndUpdateSendBody(t *testing.T) {
	server, recorded := tstServer(t, http.StatusOK, `{"data":{"id":"abc","status":"draft"}}`)
	transport := tstTransport(t, server.URL, nil)

	_, err := transport.Post(context.Background(), "/subscriptions", []byte(`{"schedule":"weekly","token":"t0k"}`))
	require.NoError(t, err)
	_, err = transport.Update(context.Background(), "/subscriptions/abc", []byte(`{"status":"active","token":"res"}`))
	require.NoError(t, err)

	require.Len(t, *recorded, 2)
	require.Equal(t, http.MethodPost, (*recorded)[0].method)
	require.JSONEq(t, `{"schedule":"weekly","token":"t0k"}`, (*recorded)[0].body)
	require.Equal(t, http.MethodPut, (*recorded)[1].method)
	require.Equal(t, "/subscriptions/abc", (*recorded)[1].uri)
	require.JSONEq(t, `{"status":"active","token":"res"}`, (*recorded)[1].body)
}

func TestSignedRequestVerifies(t *testing.T) {
	identity, err := downstreams.GenerateIdentity()
	require.NoError(t, err)

	server, recorded := tstServer(t, http.StatusOK, `{"data":{}}`)
	transport := tstTransport(t, server.URL, identity)

	_, err = transport.Post(context.Background(), "/bills", []byte(`{"number":"1"}`))
	require.NoError(t, err)

	r := (*recorded)[0]
	require.Equal(t, identity.PublicKeyHex(), r.header.Get(downstreams.IdentityHeader))
	payload := downstreams.SigningPayload(server.URL+r.uri, []byte(r.body))
	require.NoError(t, downstreams.VerifySignature(identity.PublicKeyHex(), payload, r.header.Get(downstreams.SignatureHeader)))
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		code     string
		message  string
	}{
		{
			name:     "error envelope",
			status:   http.StatusBadRequest,
			response: `{"status":"error","code":"010207","data":null,"message":"Invalid schedule"}`,
			code:     "010207",
			message:  "Invalid schedule",
		},
		{
			name:     "error envelope with success status",
			status:   http.StatusOK,
			response: `{"status":"error","code":"000000","message":"Something went wrong"}`,
			code:     "000000",
			message:  "Something went wrong",
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			response: `{"error":"Object not found"}`,
			message:  "Object not found",
		},
		{
			name:     "errors list",
			status:   http.StatusBadRequest,
			response: `{"errors":[{"error":"Missing required parameter","param":"token"},"also bad"]}`,
			message:  "token: Missing required parameter; also bad",
		},
		{
			name:     "plain status",
			status:   http.StatusUnauthorized,
			response: `{}`,
			message:  "Unauthorized",
		},
		{
			name:     "no json",
			status:   http.StatusBadGateway,
			response: `<html>bad gateway</html>`,
			message:  "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := tstServer(t, tt.status, tt.response)
			transport := tstTransport(t, server.URL, nil)

			body, err := transport.Get(context.Background(), "/subscriptions/abc", nil)
			require.Error(t, err)
			require.Nil(t, body)

			apiErr := apierrors.AsAPIError(err)
			require.NotNil(t, apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.code, apiErr.Code)
			require.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestNotFoundIsRecognisable(t *testing.T) {
	server, _ := tstServer(t, http.StatusNotFound, `{"error":"Object not found"}`)
	transport := tstTransport(t, server.URL, nil)

	_, err := transport.Get(context.Background(), "/bills/nope", nil)
	require.True(t, apierrors.IsNotFound(err))
}

func TestNonJsonSuccessBodyIsPassedOn(t *testing.T) {
	server, _ := tstServer(t, http.StatusOK, `<html>maintenance</html>`)
	transport := tstTransport(t, server.URL, nil)

	body, err := transport.Get(context.Background(), "/subscriptions/abc", url.Values{"token": []string{"resource-token"}})
	require.NoError(t, err)
	require.Equal(t, `<html>maintenance</html>`, string(body))
}

func TestConnectionErrorHidesToken(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseUrl := server.URL
	server.Close()
	transport := tstTransport(t, baseUrl, nil)

	_, err := transport.Get(context.Background(), "/bills", url.Values{"token": []string{"secret-merchant-token"}})
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret-merchant-token")
	require.Contains(t, err.Error(), "token=***")
}

func TestUnwrapResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "data object", raw: `{"facade":"merchant","data":{"a":1}}`, expected: `{"a":1}`},
		{name: "data array", raw: `{"data":[{"a":1},{"a":2}]}`, expected: `[{"a":1},{"a":2}]`},
		{name: "data null", raw: `{"data":null}`, expected: `null`},
		{name: "no envelope", raw: `{"id":"abc"}`, expected: `{"id":"abc"}`},
		{name: "bare array", raw: `[1,2]`, expected: `[1,2]`},
		{name: "not json is left to the mapper", raw: `hello`, expected: `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := UnwrapResponse(http.StatusOK, []byte(tt.raw))
			require.NoError(t, err)
			require.Equal(t, tt.expected, string(body))
		})
	}
}

func TestNewRequiresBaseUrl(t *testing.T) {
	_, err := New("", Options{})
	require.Error(t, err)
}
