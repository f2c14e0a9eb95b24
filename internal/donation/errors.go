package donation

import (
	"net/http"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
)

const (
	donationNotFound   = "DONATION_NOT_FOUND"    // errInfo
	donationClosed     = "DONATION_CLOSED"       // errInfo
	paymentNotApproved = "PAYMENT_NOT_APPROVED"  // errInfo
	paymentDuplicated  = "PAYMENT_DUPLICATED"    // errInfo
	paymentConfirmFail = "PAYMENT_CONFIRM_FAILED" // errInfo
)

var (
	ErrDonationNotFound   = sharedError.NewDomainError(donationNotFound)
	ErrDonationClosed     = sharedError.NewDomainError(donationClosed)
	ErrPaymentNotApproved = sharedError.NewDomainError(paymentNotApproved)
	ErrPaymentDuplicated  = sharedError.NewDomainError(paymentDuplicated)
	ErrPaymentConfirmFail = sharedError.NewDomainError(paymentConfirmFail)
)

func init() {
	sharedError.RegisterDomainErrorResponse(donationNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "DONATION-001",
		Message: "후원 캠페인을 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(donationClosed, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "DONATION-002",
		Message: "종료된 후원 캠페인입니다.",
	})

	sharedError.RegisterDomainErrorResponse(paymentNotApproved, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "DONATION-003",
		Message: "결제가 승인되지 않았습니다.",
	})

	sharedError.RegisterDomainErrorResponse(paymentDuplicated, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "DONATION-004",
		Message: "이미 처리된 결제입니다.",
	})

	sharedError.RegisterDomainErrorResponse(paymentConfirmFail, sharedError.ErrorResponse{
		Status:  http.StatusBadGateway,
		Code:    "DONATION-005",
		Message: "결제 승인 요청에 실패했습니다.",
	})
}
