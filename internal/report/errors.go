package report

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	reportDuplicated      = "REPORT_DUPLICATED"        // errInfo
	reportTargetNotFound  = "REPORT_TARGET_NOT_FOUND"  // errInfo
	selfReportDenied      = "SELF_REPORT_DENIED"       // errInfo
	reasonDetailRequired  = "REASON_DETAIL_REQUIRED"   // errInfo
	reportNotFound        = "REPORT_NOT_FOUND"         // errInfo
	invalidStatusChange   = "INVALID_STATUS_CHANGE"    // errInfo
	reportAlreadyFinished = "REPORT_ALREADY_PROCESSED" // errInfo
	adminCommentRequired  = "ADMIN_COMMENT_REQUIRED"   // errInfo
)

var (
	ErrReportDuplicated      = sharedError.NewDomainError(reportDuplicated)
	ErrReportTargetNotFound  = sharedError.NewDomainError(reportTargetNotFound)
	ErrSelfReportDenied      = sharedError.NewDomainError(selfReportDenied)
	ErrReasonDetailRequired  = sharedError.NewDomainError(reasonDetailRequired)
	ErrReportNotFound        = sharedError.NewDomainError(reportNotFound)
	ErrInvalidStatusChange   = sharedError.NewDomainError(invalidStatusChange)
	ErrReportAlreadyFinished = sharedError.NewDomainError(reportAlreadyFinished)
	ErrAdminCommentRequired  = sharedError.NewDomainError(adminCommentRequired)
)

func init() {
	sharedError.RegisterDomainErrorResponse(reportDuplicated, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "REPORT-001",
		Message: "이미 신고한 콘텐츠입니다.",
	})

	sharedError.RegisterDomainErrorResponse(reportTargetNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "REPORT-002",
		Message: "신고 대상을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(selfReportDenied, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "REPORT-003",
		Message: "자신의 콘텐츠는 신고할 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(reasonDetailRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "REPORT-004",
		Message: "기타 사유는 상세 내용이 필요합니다.",
	})

	sharedError.RegisterDomainErrorResponse(reportNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "REPORT-005",
		Message: "신고 내역을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidStatusChange, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "REPORT-006",
		Message: "허용되지 않는 상태 변경입니다.",
	})

	sharedError.RegisterDomainErrorResponse(reportAlreadyFinished, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "REPORT-007",
		Message: "이미 처리가 끝난 신고입니다.",
	})

	sharedError.RegisterDomainErrorResponse(adminCommentRequired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "REPORT-008",
		Message: "처리 결과에는 관리자 코멘트가 필요합니다.",
	})
}
