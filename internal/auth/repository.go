package auth

import (
	"context"
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type AuthRepository struct{}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{}
}

func (r *AuthRepository) FindSocialAccount(ctx context.Context, db *gorm.DB, provider model.SocialProvider, providerID string) (*model.MemberSocialAccount, error) {
	var account model.MemberSocialAccount
	err := db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AuthRepository) CreateSocialAccount(ctx context.Context, db *gorm.DB, account *model.MemberSocialAccount) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *AuthRepository) TouchSocialAccountLogin(ctx context.Context, db *gorm.DB, accountID int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&model.MemberSocialAccount{}).
		Where("id = ?", accountID).
		Update("last_login_at", at).Error
}

func (r *AuthRepository) CreateRefreshToken(ctx context.Context, db *gorm.DB, token *model.RefreshToken) error {
	return db.WithContext(ctx).Create(token).Error
}

// FindValidRefreshTokens 회원의 살아있는 refresh token 목록 (bcrypt 비교용)
func (r *AuthRepository) FindValidRefreshTokens(ctx context.Context, db *gorm.DB, memberID int64) ([]model.RefreshToken, error) {
	var tokens []model.RefreshToken
	err := db.WithContext(ctx).
		Where("member_id = ? AND revoked = ? AND expires_at > ?", memberID, false, time.Now()).
		Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *AuthRepository) RevokeRefreshToken(ctx context.Context, db *gorm.DB, tokenID int64) error {
	return db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("id = ?", tokenID).
		Update("revoked", true).Error
}

func (r *AuthRepository) RevokeAllRefreshTokens(ctx context.Context, db *gorm.DB, memberID int64) error {
	return db.WithContext(ctx).
		Model(&model.RefreshToken{}).
		Where("member_id = ? AND revoked = ?", memberID, false).
		Update("revoked", true).Error
}
