package common

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/logging"
)

type testResponse struct {
	Counter int `json:"counter"`
}

func TestCreateHandler(t *testing.T) {
	okEndpoint := func(ctx context.Context, request *ResourceRequest, logger logging.Logger) (*testResponse, error) {
		return &testResponse{Counter: 1}, nil
	}

	tests := []struct {
		name           string
		endpoint       Endpoint[ResourceRequest, testResponse]
		reqHandler     RequestHandler[ResourceRequest]
		respHandler    ResponseHandler[testResponse]
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing request handler",
			endpoint:       okEndpoint,
			respHandler:    DataResponseHandler[testResponse]("merchant"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"error","code":"000000","message":"An internal error occurred"}`,
		},
		{
			name:           "missing response handler",
			endpoint:       okEndpoint,
			reqHandler:     ParseResourceRequest,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"error","code":"000000","message":"An internal error occurred"}`,
		},
		{
			name:     "request parsing fails",
			endpoint: okEndpoint,
			reqHandler: func(r *http.Request) (*ResourceRequest, error) {
				return nil, errors.New("broken")
			},
			respHandler:    DataResponseHandler[testResponse]("merchant"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"error","code":"000003","message":"Invalid request"}`,
		},
		{
			name: "endpoint returns api error",
			endpoint: func(ctx context.Context, request *ResourceRequest, logger logging.Logger) (*testResponse, error) {
				return nil, apierrors.NewAPIError(http.StatusNotFound, "000002", "Object not found")
			},
			reqHandler:     ParseResourceRequest,
			respHandler:    DataResponseHandler[testResponse]("merchant"),
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"error","code":"000002","message":"Object not found"}`,
		},
		{
			name: "endpoint returns other error",
			endpoint: func(ctx context.Context, request *ResourceRequest, logger logging.Logger) (*testResponse, error) {
				return nil, errors.New("endpoint failed")
			},
			reqHandler:     ParseResourceRequest,
			respHandler:    DataResponseHandler[testResponse]("merchant"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"error","code":"000000","message":"An internal error occurred"}`,
		},
		{
			name:           "success is wrapped in the envelope",
			endpoint:       okEndpoint,
			reqHandler:     ParseResourceRequest,
			respHandler:    DataResponseHandler[testResponse]("merchant"),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"facade":"merchant","data":{"counter":1}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Get("/", CreateHandler(tc.endpoint, tc.reqHandler, tc.respHandler))

			srv := httptest.NewServer(router)
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/")
			require.NoError(t, err)
			defer resp.Body.Close()

			b, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			require.Equal(t, tc.expectedStatus, resp.StatusCode)
			require.JSONEq(t, tc.expectedBody, string(b))
			require.Equal(t, ContentTypeApplicationJson, resp.Header.Get("Content-Type"))
		})
	}
}

func TestParseResourceRequest(t *testing.T) {
	var parsed *ResourceRequest

	router := chi.NewRouter()
	router.Put("/bills/{id}", func(w http.ResponseWriter, r *http.Request) {
		var err error
		parsed, err = ParseResourceRequest(r)
		require.NoError(t, err)
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/bills/abc123?token=tok&status=draft", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.NotNil(t, parsed)
	require.Equal(t, "abc123", parsed.ID)
	require.Equal(t, "tok", parsed.Token)
	require.Equal(t, "draft", parsed.Query.Get("status"))
	require.Equal(t, `{"a":1}`, string(parsed.Body))
}
