package taskmesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/taskme/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodeForbidden         = "forbidden"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeConflict          = "conflict"
	ErrorCodeGone              = "gone"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeServerError       = "server_error"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// APIError is an error response. The server writes it with WriteError and
// the client returns it for any unexpected status.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// NewAPIError builds an error with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

func BadRequest(desc string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidRequest, desc)
}

func Unauthorized(desc string) *APIError {
	return NewAPIError(http.StatusUnauthorized, ErrorCodeUnauthorized, desc)
}

func Forbidden(desc string) *APIError {
	return NewAPIError(http.StatusForbidden, ErrorCodeForbidden, desc)
}

func NotFound(desc string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, desc)
}

func Conflict(desc string) *APIError {
	return NewAPIError(http.StatusConflict, ErrorCodeConflict, desc)
}

func Gone(desc string) *APIError {
	return NewAPIError(http.StatusGone, ErrorCodeGone, desc)
}

// ServerError never carries the underlying cause; log it instead.
func ServerError(desc string) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeServerError, desc)
}

var (
	ErrInvalidBody = BadRequest("Invalid request body")
	ErrNotAuthed   = Unauthorized("Could not validate credentials")
	ErrInternal    = ServerError("Internal server error")
)

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        http.StatusText(resp.StatusCode),
			Description: string(body),
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Code: er.Error, Description: er.ErrorDescription}
}
