package error

import (
	"errors"
	"net/http"
	"time"
)

type DomainError interface {
	error // Embed standard error interface
	Info() string
}

type domainSentinel struct {
	errInfo string
}

func (e *domainSentinel) Error() string {
	return e.errInfo
}

func (e *domainSentinel) Info() string {
	return e.errInfo
}

// ErrorResponse is the JSON response structure for errors
type ErrorResponse struct {
	Status    int    `json:"status"`
	Code      string `json:"errorCode"`
	Message   string `json:"message"` // client message
	Timestamp string `json:"timestamp,omitempty"`
}

// WithTimestamp returns a copy stamped with the current UTC time
func (r ErrorResponse) WithTimestamp() ErrorResponse {
	r.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return r
}

// Common errors
var (
	domainErrorResponses = map[string]ErrorResponse{}

	// ValidationFailed indicates the request payload failed validation
	ValidationFailed = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "COMMON-001", // INVALID_INPUT_VALUE
		Message: "잘못된 입력값입니다.",
	}

	// InvalidRequest indicates the request format is invalid (e.g., JSON parsing error)
	InvalidRequest = ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "COMMON-002", // INVALID_REQUEST
		Message: "잘못된 요청 형식입니다.",
	}

	// InternalServerError indicates an unexpected server error
	InternalServerError = ErrorResponse{
		Status:  http.StatusInternalServerError,
		Code:    "COMMON-005", // INTERNAL_SERVER_ERROR
		Message: "서버 내부 오류가 발생했습니다.",
	}

	// ExternalServerError indicates an upstream (payment gateway 등) failure
	ExternalServerError = ErrorResponse{
		Status:  http.StatusBadGateway,
		Code:    "COMMON-006", // EXTERNAL_SERVER_ERROR
		Message: "외부 서비스 호출에 실패했습니다.",
	}
)

// NewDomainError creates a sentinel error that can participate in error chains.
func NewDomainError(errInfo string) DomainError {
	return &domainSentinel{errInfo: errInfo}
}

// RegisterDomainErrorResponse registers a mapping between a domain error errInfo and a shared error response.
func RegisterDomainErrorResponse(errInfo string, resp ErrorResponse) {
	domainErrorResponses[errInfo] = resp
}

// ResolveDomainError converts a domain error into a shared error response if a mapping exists.
func ResolveDomainError(err error) (ErrorResponse, bool) {
	if err == nil {
		return ErrorResponse{}, false
	}

	var domainErr DomainError
	if errors.As(err, &domainErr) {
		if resp, ok := domainErrorResponses[domainErr.Info()]; ok {
			return resp, true
		}
	}
	return ErrorResponse{}, false
}
