package feed

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	feedNotFound     = "FEED_NOT_FOUND"         // errInfo
	feedAccessDenied = "FEED_ACCESS_DENIED"     // errInfo
	tooManyImages    = "FEED_TOO_MANY_IMAGES"   // errInfo
	toggleConflict   = "FEED_TOGGLE_CONFLICT"   // errInfo
	togetherRequired = "FEED_TOGETHER_REQUIRED" // errInfo
)

var (
	ErrFeedNotFound     = sharedError.NewDomainError(feedNotFound)
	ErrFeedAccessDenied = sharedError.NewDomainError(feedAccessDenied)
	ErrTooManyImages    = sharedError.NewDomainError(tooManyImages)
	ErrToggleConflict   = sharedError.NewDomainError(toggleConflict)
	ErrTogetherRequired = sharedError.NewDomainError(togetherRequired)
)

func init() {
	sharedError.RegisterDomainErrorResponse(feedNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "FEED-001",
		Message: "피드를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(feedAccessDenied, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "FEED-002",
		Message: "피드에 대한 권한이 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(tooManyImages, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "FEED-003",
		Message: "이미지는 최대 10장까지 첨부할 수 있습니다.",
	})

	sharedError.RegisterDomainErrorResponse(toggleConflict, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "FEED-004",
		Message: "잠시 후 다시 시도해 주세요.",
	})

	sharedError.RegisterDomainErrorResponse(togetherRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "FEED-005",
		Message: "인증 피드에는 함께하기 ID가 필요합니다.",
	})
}
