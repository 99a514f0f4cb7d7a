package common

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-http-utils/headers"

	"github.com/eurofurence/reg-bitpay-client/internal/apierrors"
	"github.com/eurofurence/reg-bitpay-client/internal/logging"
)

const ContentTypeApplicationJson = "application/json"

// ResourceRequest is what the BitPay endpoints get out of a request.
type ResourceRequest struct {
	// ID is the {id} path parameter, empty for collection endpoints
	ID string
	// Token is the token query parameter used by read requests
	Token string
	Query url.Values
	Body  []byte
}

func ParseResourceRequest(r *http.Request) (*ResourceRequest, error) {
	var body []byte
	if r.Body != nil {
		var err error
		if body, err = io.ReadAll(r.Body); err != nil {
			return nil, err
		}
	}

	query := r.URL.Query()
	return &ResourceRequest{
		ID:    chi.URLParam(r, "id"),
		Token: query.Get("token"),
		Query: query,
		Body:  body,
	}, nil
}

// DataResponseHandler wraps the result in the BitPay envelope for the given facade.
func DataResponseHandler[Res any](facade string) ResponseHandler[Res] {
	return func(_ context.Context, res *Res, w http.ResponseWriter) error {
		w.Header().Set(headers.ContentType, ContentTypeApplicationJson)
		w.WriteHeader(http.StatusOK)
		return json.NewEncoder(w).Encode(NewResponse(facade, res))
	}
}

func EncodeToJSON(w http.ResponseWriter, obj interface{}, logger logging.Logger) {
	enc := json.NewEncoder(w)

	if obj != nil {
		err := enc.Encode(obj)

		if err != nil {
			logger.Error("Could not encode response. [error]: %v", err)
		}
	}
}

func SendBadRequestResponse(w http.ResponseWriter, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusBadRequest, CodeInvalidRequest, RequestParseErrorMessage, logger, details)
}

func SendUnauthorizedResponse(w http.ResponseWriter, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusUnauthorized, CodeUnauthorized, AuthUnauthorizedMessage, logger, details)
}

func SendInternalServerError(w http.ResponseWriter, logger logging.Logger, details string) {
	SendResponseWithStatusAndMessage(w, http.StatusInternalServerError, CodeInternal, InternalErrorMessage, logger, details)
}

// SendErrorResponse answers with the status, code and message of an apierrors.APIError,
// anything else is an internal error.
func SendErrorResponse(w http.ResponseWriter, err error, logger logging.Logger) {
	if apiErr := apierrors.AsAPIError(err); apiErr != nil {
		SendResponseWithStatusAndMessage(w, apiErr.StatusCode, apiErr.Code, APIErrorMessage(apiErr.Message), logger, "")
		return
	}
	SendInternalServerError(w, logger, err.Error())
}

func SendResponseWithStatusAndMessage(w http.ResponseWriter, status int, code string, message APIErrorMessage, logger logging.Logger, details string) {
	if details != "" {
		logger.Debug("Request was not successful: [error]: %s", details)
	}

	w.Header().Set(headers.ContentType, ContentTypeApplicationJson)
	w.WriteHeader(status)

	EncodeToJSON(w, NewAPIError(code, message), logger)
}
