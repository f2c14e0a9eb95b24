package model

import (
	"time"

	"gorm.io/gorm"
)

// Donation 후원 캠페인
type Donation struct {
	BaseEntity

	Title         string     `gorm:"column:title;type:VARCHAR2(200);not null"`
	Description   string     `gorm:"column:description;type:VARCHAR2(2000)"`
	TargetAmount  int64      `gorm:"column:target_amount;not null"`
	CurrentAmount int64      `gorm:"column:current_amount;not null;default:0"`
	StartDate     *time.Time `gorm:"column:start_date"`
	EndDate       *time.Time `gorm:"column:end_date"`

	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (*Donation) TableName() string {
	return "donations"
}

type TossPaymentStatus string

const (
	TossPaymentDone TossPaymentStatus = "DONE"
)

// TossPayment 토스 결제 승인 기록
type TossPayment struct {
	BaseEntity

	MemberID   int64             `gorm:"column:member_id;not null;index"`
	PaymentKey string            `gorm:"column:payment_key;type:VARCHAR2(200);not null;uniqueIndex:uk_toss_payment_key"`
	OrderID    string            `gorm:"column:order_id;type:VARCHAR2(100);not null"`
	Amount     int64             `gorm:"column:amount;not null"`
	Status     TossPaymentStatus `gorm:"column:status;type:VARCHAR2(20);not null"`
	ApprovedAt *time.Time        `gorm:"column:approved_at"`
}

func (*TossPayment) TableName() string {
	return "toss_payments"
}

// DonationPayment 후원 결제 내역
type DonationPayment struct {
	BaseEntity

	DonationID    int64  `gorm:"column:donation_id;not null;index"`
	MemberID      int64  `gorm:"column:member_id;not null;index"`
	Amount        int64  `gorm:"column:amount;not null"`
	PaymentMethod string `gorm:"column:payment_method;type:VARCHAR2(20);not null"`

	Member *Member `gorm:"foreignKey:MemberID"`
}

func (*DonationPayment) TableName() string {
	return "donation_payments"
}
