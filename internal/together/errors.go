package together

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	togetherNotFound     = "TOGETHER_NOT_FOUND"      // errInfo
	togetherAccessDenied = "TOGETHER_ACCESS_DENIED"  // errInfo
	togetherFull         = "TOGETHER_CAPACITY_FULL"  // errInfo
	alreadyJoined        = "TOGETHER_ALREADY_JOINED" // errInfo
	notJoined            = "TOGETHER_NOT_JOINED"     // errInfo
	notRecruiting        = "TOGETHER_NOT_RECRUITING" // errInfo
)

var (
	ErrTogetherNotFound     = sharedError.NewDomainError(togetherNotFound)
	ErrTogetherAccessDenied = sharedError.NewDomainError(togetherAccessDenied)
	ErrTogetherFull         = sharedError.NewDomainError(togetherFull)
	ErrAlreadyJoined        = sharedError.NewDomainError(alreadyJoined)
	ErrNotJoined            = sharedError.NewDomainError(notJoined)
	ErrNotRecruiting        = sharedError.NewDomainError(notRecruiting)
)

func init() {
	sharedError.RegisterDomainErrorResponse(togetherNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "TOGETHER-001",
		Message: "함께하기를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(togetherAccessDenied, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "TOGETHER-002",
		Message: "함께하기에 대한 권한이 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(togetherFull, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "TOGETHER-003",
		Message: "모집 정원이 가득 찼습니다.",
	})

	sharedError.RegisterDomainErrorResponse(alreadyJoined, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "TOGETHER-004",
		Message: "이미 참여 중인 함께하기입니다.",
	})

	sharedError.RegisterDomainErrorResponse(notJoined, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "TOGETHER-005",
		Message: "참여 중인 함께하기가 아닙니다.",
	})

	sharedError.RegisterDomainErrorResponse(notRecruiting, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "TOGETHER-006",
		Message: "모집 중인 함께하기가 아닙니다.",
	})
}
