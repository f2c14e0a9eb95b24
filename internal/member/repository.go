package member

import (
	"context"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (m *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Create(member).Error
}

func (m *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDUnscoped 탈퇴 회원 포함 조회 (관리자/신고 처리용)
func (m *MemberRepository) FindByIDUnscoped(ctx context.Context, db *gorm.DB, id int64) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (m *MemberRepository) FindByMemberCode(ctx context.Context, db *gorm.DB, code string) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).Where("member_code = ?", code).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// 활성 회원 기준 유일성 검사. deleted_at이 있는 회원은 제외되므로
// 탈퇴 회원의 이메일/닉네임은 재사용할 수 있다.

func (m *MemberRepository) ExistsActiveEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *MemberRepository) ExistsActiveNickname(ctx context.Context, db *gorm.DB, nickname string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Where("nickname = ?", nickname).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *MemberRepository) ExistsMemberCode(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Member{}).
		Unscoped(). // member code는 탈퇴 회원과도 겹치면 안 됨
		Where("member_code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *MemberRepository) Update(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Save(member).Error
}

// SoftDelete 회원 소프트 삭제 (탈퇴)
func (m *MemberRepository) SoftDelete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&model.Member{}, id).Error
}
