package donation

import (
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
)

type CreateDonationRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  string     `json:"description" binding:"max=2000"`
	TargetAmount int64      `json:"targetAmount" binding:"required,min=1"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

type DonationResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	TargetAmount  int64      `json:"targetAmount"`
	CurrentAmount int64      `json:"currentAmount"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func NewDonationResponse(d *model.Donation) *DonationResponse {
	return &DonationResponse{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		CreatedAt:     d.CreatedAt,
	}
}

// ConfirmPaymentRequest 결제 승인 + 후원 반영 요청
type ConfirmPaymentRequest struct {
	DonationID int64  `json:"donationId" binding:"required,min=1"`
	PaymentKey string `json:"paymentKey" binding:"required,max=200"`
	OrderID    string `json:"orderId" binding:"required,max=100"`
	Amount     int64  `json:"amount" binding:"required,min=1"`
}

type ConfirmPaymentResponse struct {
	DonationID    int64  `json:"donationId"`
	PaymentKey    string `json:"paymentKey"`
	Amount        int64  `json:"amount"`
	CurrentAmount int64  `json:"currentAmount"`
}

// DonorResponse 캠페인 후원자 내역 한 건
type DonorResponse struct {
	MemberID  int64     `json:"memberId"`
	Nickname  *string   `json:"nickname"`
	Amount    int64     `json:"amount"`
	DonatedAt time.Time `json:"donatedAt"`
}

func NewDonorResponse(p *model.DonationPayment) *DonorResponse {
	resp := &DonorResponse{
		MemberID:  p.MemberID,
		Amount:    p.Amount,
		DonatedAt: p.CreatedAt,
	}
	if p.Member != nil {
		resp.Nickname = p.Member.Nickname
	}
	return resp
}
