package comment

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	commentNotFound      = "COMMENT_NOT_FOUND"       // errInfo
	commentAccessDenied  = "COMMENT_ACCESS_DENIED"   // errInfo
	replyDepthExceeded   = "REPLY_DEPTH_EXCEEDED"    // errInfo
	commentTargetInvalid = "COMMENT_TARGET_INVALID"  // errInfo
	donationNotSupported = "DONATION_COMMENT_DENIED" // errInfo
	commentToggleTimeout = "COMMENT_TOGGLE_CONFLICT" // errInfo
)

var (
	ErrCommentNotFound      = sharedError.NewDomainError(commentNotFound)
	ErrCommentAccessDenied  = sharedError.NewDomainError(commentAccessDenied)
	ErrReplyDepthExceeded   = sharedError.NewDomainError(replyDepthExceeded)
	ErrCommentTargetInvalid = sharedError.NewDomainError(commentTargetInvalid)
	ErrDonationNotSupported = sharedError.NewDomainError(donationNotSupported)
	ErrCommentToggleTimeout = sharedError.NewDomainError(commentToggleTimeout)
)

func init() {
	sharedError.RegisterDomainErrorResponse(commentNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "COMMENT-001",
		Message: "댓글을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(commentAccessDenied, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "COMMENT-002",
		Message: "댓글에 대한 권한이 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(replyDepthExceeded, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "COMMENT-003",
		Message: "답글에는 답글을 달 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(commentTargetInvalid, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "COMMENT-004",
		Message: "댓글 대상을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(donationNotSupported, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "COMMENT-005",
		Message: "후원 캠페인에는 댓글을 달 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(commentToggleTimeout, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "COMMENT-006",
		Message: "잠시 후 다시 시도해 주세요.",
	})
}
