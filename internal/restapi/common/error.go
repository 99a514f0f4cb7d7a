package common

type APIErrorMessage string

const (
	AuthUnauthorizedMessage  APIErrorMessage = "Unauthorized"
	RequestParseErrorMessage APIErrorMessage = "Invalid request"
	InternalErrorMessage     APIErrorMessage = "An internal error occurred"
	UnknownErrorMessage      APIErrorMessage = "An unknown error occurred"
)

const (
	CodeInternal       = "000000"
	CodeUnauthorized   = "000001"
	CodeInvalidRequest = "000003"
)

// APIError is the error body of the BitPay api.
type APIError struct {
	Status  string          `json:"status"`
	Code    string          `json:"code,omitempty"`
	Message APIErrorMessage `json:"message"`
}

func NewAPIError(code string, message APIErrorMessage) *APIError {
	return &APIError{
		Status:  "error",
		Code:    code,
		Message: message,
	}
}
