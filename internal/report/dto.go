package report

import (
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
)

type CreateReportRequest struct {
	TargetType   string  `json:"targetType" binding:"required,oneof=FEED COMMENT TOGETHER"`
	TargetID     int64   `json:"targetId" binding:"required,min=1"`
	ReasonType   string  `json:"reasonType" binding:"required"`
	ReasonDetail *string `json:"reasonDetail" binding:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status       string  `json:"status" binding:"required,oneof=REVIEWING APPROVED REJECTED"`
	AdminComment *string `json:"adminComment" binding:"omitempty,max=1000"`
}

type ReportResponse struct {
	ID               int64      `json:"id"`
	ReporterID       int64      `json:"reporterId"`
	TargetType       string     `json:"targetType"`
	TargetID         int64      `json:"targetId"`
	ReportedMemberID *int64     `json:"reportedMemberId,omitempty"`
	ReasonType       string     `json:"reasonType"`
	ReasonDetail     *string    `json:"reasonDetail,omitempty"`
	Status           string     `json:"status"`
	AdminComment     *string    `json:"adminComment,omitempty"`
	ProcessedAt      *time.Time `json:"processedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func NewReportResponse(r *model.Report) *ReportResponse {
	return &ReportResponse{
		ID:               r.ID,
		ReporterID:       r.ReporterID,
		TargetType:       string(r.TargetType),
		TargetID:         r.TargetID,
		ReportedMemberID: r.ReportedMemberID,
		ReasonType:       string(r.ReasonType),
		ReasonDetail:     r.ReasonDetail,
		Status:           string(r.Status),
		AdminComment:     r.AdminComment,
		ProcessedAt:      r.ProcessedAt,
		CreatedAt:        r.CreatedAt,
	}
}

type CreateReportResponse struct {
	Report     *ReportResponse `json:"report"`
	Suppressed bool            `json:"suppressed"` // 누적 신고로 대상이 숨김 처리됐는지
}

// ReportStatsResponse 관리자용 신고 통계.
// 상태별 건수와 대상 유형별 미처리 건수를 함께 담는다.
type ReportStatsResponse struct {
	Total         int64            `json:"total"`
	Pending       int64            `json:"pending"`
	Reviewing     int64            `json:"reviewing"`
	Approved      int64            `json:"approved"`
	Rejected      int64            `json:"rejected"`
	PendingByType map[string]int64 `json:"pendingByType"`
}

// FrequentTargetResponse 다발 신고 대상
type FrequentTargetResponse struct {
	TargetType  string `json:"targetType"`
	TargetID    int64  `json:"targetId"`
	ReportCount int64  `json:"reportCount"`
}

// FrequentReportedMemberResponse 다발 피신고 회원
type FrequentReportedMemberResponse struct {
	MemberID    int64 `json:"memberId"`
	ReportCount int64 `json:"reportCount"`
}
