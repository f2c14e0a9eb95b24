package model

import (
	"time"
)

// RefreshToken 회원별 refresh token (bcrypt 해시로 저장)
type RefreshToken struct {
	BaseEntity

	MemberID  int64     `gorm:"column:member_id;not null;index"`
	TokenHash string    `gorm:"column:token_hash;type:VARCHAR2(100);not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	Revoked   bool      `gorm:"column:revoked;not null;default:false"`
}

func (*RefreshToken) TableName() string {
	return "refresh_token"
}

func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

func (t *RefreshToken) IsValid() bool {
	return !t.Revoked && !t.IsExpired()
}
