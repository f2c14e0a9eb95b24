package member

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	memberNotFound        = "MEMBER_NOT_FOUND"         // errInfo
	nicknameAlreadyExists = "NICKNAME_ALREADY_EXISTS"  // errInfo
	emailAlreadyExists    = "EMAIL_ALREADY_EXISTS"     // errInfo
	additionalInfoDone    = "ADDITIONAL_INFO_COMPLETE" // errInfo
)

var (
	ErrMemberNotFound        = sharedError.NewDomainError(memberNotFound)
	ErrNicknameAlreadyExists = sharedError.NewDomainError(nicknameAlreadyExists)
	ErrEmailAlreadyExists    = sharedError.NewDomainError(emailAlreadyExists)
	ErrAdditionalInfoDone    = sharedError.NewDomainError(additionalInfoDone)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(nicknameAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-002",
		Message: "이미 사용 중인 닉네임입니다.",
	})

	sharedError.RegisterDomainErrorResponse(emailAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-003",
		Message: "이미 사용 중인 이메일입니다.",
	})

	sharedError.RegisterDomainErrorResponse(additionalInfoDone, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "MEMBER-004",
		Message: "이미 추가 정보 입력이 완료된 회원입니다.",
	})
}
