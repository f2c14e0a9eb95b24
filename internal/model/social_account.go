package model

import (
	"time"
)

// MemberSocialAccount 회원의 소셜 계정 연결 정보
// (provider, provider_id)는 전역 유일
type MemberSocialAccount struct {
	BaseEntity

	MemberID    int64          `gorm:"column:member_id;not null;index"`
	Provider    SocialProvider `gorm:"column:provider;type:VARCHAR2(20);not null;uniqueIndex:uk_social_provider_id"`
	ProviderID  string         `gorm:"column:provider_id;type:VARCHAR2(100);not null;uniqueIndex:uk_social_provider_id"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at"`
}

func (*MemberSocialAccount) TableName() string {
	return "member_social_account"
}
