package model

import (
	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleUser  MemberRole = "USER"
	RoleAdmin MemberRole = "ADMIN"
)

type SocialProvider string

const (
	ProviderGoogle SocialProvider = "GOOGLE"
	ProviderKakao  SocialProvider = "KAKAO"
	ProviderNaver  SocialProvider = "NAVER"
)

// Member 소셜 로그인 기반 회원
// nickname, email은 추가 정보 입력 전까지 null 허용.
// 활성 회원(deleted_at IS NULL) 간의 유일성은 서비스 계층에서 검사한다.
// DB unique index를 걸면 탈퇴 회원의 이메일 재사용이 막히기 때문.
type Member struct {
	BaseEntity

	Name              string          `gorm:"column:name;type:VARCHAR2(50);not null"`
	Nickname          *string         `gorm:"column:nickname;type:VARCHAR2(20);index"`
	Email             *string         `gorm:"column:email;type:VARCHAR2(100);index"`
	MemberCode        string          `gorm:"column:member_code;type:VARCHAR2(8);not null;index"` // 불변 회원 코드 (A-Z, 0-9)
	ProfileImageURL   *string         `gorm:"column:profile_image_url;type:VARCHAR2(500)"`
	Role              MemberRole      `gorm:"column:role;type:VARCHAR2(20);not null;default:USER"`
	LastLoginProvider *SocialProvider `gorm:"column:last_login_provider;type:VARCHAR2(20)"`

	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (*Member) TableName() string {
	return "members"
}

func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// AdditionalInfoRequired 닉네임/이메일 추가 입력이 필요한지 확인
func (m *Member) AdditionalInfoRequired() bool {
	return m.Nickname == nil || m.Email == nil
}
