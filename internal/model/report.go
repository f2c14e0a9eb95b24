package model

import (
	"time"
)

type ReportTargetType string

const (
	ReportTargetFeed     ReportTargetType = "FEED"
	ReportTargetComment  ReportTargetType = "COMMENT"
	ReportTargetTogether ReportTargetType = "TOGETHER"
)

type ReportReasonType string

const (
	ReasonSpam                 ReportReasonType = "SPAM"
	ReasonHateSpeech           ReportReasonType = "HATE_SPEECH"
	ReasonHarassment           ReportReasonType = "HARASSMENT"
	ReasonInappropriateContent ReportReasonType = "INAPPROPRIATE_CONTENT"
	ReasonViolence             ReportReasonType = "VIOLENCE"
	ReasonFalseInformation     ReportReasonType = "FALSE_INFORMATION"
	ReasonCopyright            ReportReasonType = "COPYRIGHT"
	ReasonPrivacy              ReportReasonType = "PRIVACY"
	ReasonOther                ReportReasonType = "OTHER" // 상세 사유 필수
)

func (r ReportReasonType) Valid() bool {
	switch r {
	case ReasonSpam, ReasonHateSpeech, ReasonHarassment, ReasonInappropriateContent,
		ReasonViolence, ReasonFalseInformation, ReasonCopyright, ReasonPrivacy, ReasonOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusReviewing ReportStatus = "REVIEWING"
	ReportStatusApproved  ReportStatus = "APPROVED" // 종결 상태
	ReportStatusRejected  ReportStatus = "REJECTED" // 종결 상태
)

// Report 신고
// (reporter_id, target_type, target_id) unique. 중복 신고 방지.
// 신고는 삭제되지 않으며 상태 전이는 관리자만 수행한다.
type Report struct {
	BaseEntity

	ReporterID       int64            `gorm:"column:reporter_id;not null;uniqueIndex:uk_report_reporter_target;index:idx_report_reporter_id"`
	TargetType       ReportTargetType `gorm:"column:target_type;type:VARCHAR2(20);not null;uniqueIndex:uk_report_reporter_target"`
	TargetID         int64            `gorm:"column:target_id;not null;uniqueIndex:uk_report_reporter_target;index:idx_report_target_id"`
	ReportedMemberID *int64           `gorm:"column:reported_member_id;index"` // 대상 콘텐츠 작성자 (TOGETHER는 null)
	ReasonType       ReportReasonType `gorm:"column:reason_type;type:VARCHAR2(30);not null"`
	ReasonDetail     *string          `gorm:"column:reason_detail;type:VARCHAR2(1000)"`

	Status        ReportStatus `gorm:"column:status;type:VARCHAR2(20);not null;default:PENDING"`
	AdminComment  *string      `gorm:"column:admin_comment;type:VARCHAR2(1000)"`
	ProcessedAt   *time.Time   `gorm:"column:processed_at"`
	ProcessedByID *int64       `gorm:"column:processed_by"`
}

func (*Report) TableName() string {
	return "reports"
}

// IsProcessed 종결(승인/기각) 여부
func (r *Report) IsProcessed() bool {
	return r.Status == ReportStatusApproved || r.Status == ReportStatusRejected
}

func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}
