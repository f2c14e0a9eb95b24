package model

import (
	"time"

	"gorm.io/gorm"
)

type TogetherStatus string

const (
	TogetherStatusRecruiting TogetherStatus = "RECRUITING"
	TogetherStatusOngoing    TogetherStatus = "ONGOING"
	TogetherStatusClosed     TogetherStatus = "CLOSED"
)

// Together 함께하기 모임
type Together struct {
	BaseEntity

	MemberID    int64          `gorm:"column:member_id;not null;index"` // 주최자
	Title       string         `gorm:"column:title;type:VARCHAR2(200);not null"`
	Description string         `gorm:"column:description;type:VARCHAR2(2000)"`
	Category    string         `gorm:"column:category;type:VARCHAR2(50)"`
	Mode        string         `gorm:"column:mode;type:VARCHAR2(20)"`
	Capacity    int            `gorm:"column:capacity;not null"`
	StartDate   *time.Time     `gorm:"column:start_date"`
	EndDate     *time.Time     `gorm:"column:end_date"`
	Status      TogetherStatus `gorm:"column:status;type:VARCHAR2(20);not null;default:RECRUITING"`

	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (*Together) TableName() string {
	return "together"
}

// TogetherParticipant 모임 참여자
type TogetherParticipant struct {
	BaseEntity

	TogetherID int64 `gorm:"column:together_id;not null;uniqueIndex:uk_together_participant"`
	MemberID   int64 `gorm:"column:member_id;not null;uniqueIndex:uk_together_participant"`
}

func (*TogetherParticipant) TableName() string {
	return "together_participant"
}
