package auth

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	unsupportedProvider = "UNSUPPORTED_PROVIDER"  // errInfo
	providerAuthFailed  = "PROVIDER_AUTH_FAILED"  // errInfo
	invalidRefreshToken = "INVALID_REFRESH_TOKEN" // errInfo
)

var (
	ErrUnsupportedProvider = sharedError.NewDomainError(unsupportedProvider)
	ErrProviderAuthFailed  = sharedError.NewDomainError(providerAuthFailed)
	ErrInvalidRefreshToken = sharedError.NewDomainError(invalidRefreshToken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(unsupportedProvider, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-001",
		Message: "지원하지 않는 소셜 로그인입니다.",
	})

	sharedError.RegisterDomainErrorResponse(providerAuthFailed, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-002",
		Message: "소셜 로그인 인증에 실패했습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidRefreshToken, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-004",
		Message: "다시 로그인해 주세요.",
	})
}
