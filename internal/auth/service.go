package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/team-moa/moa-api-server/internal/config"
	"github.com/team-moa/moa-api-server/internal/member"
	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"github.com/team-moa/moa-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	memberCodeLength   = 8
	memberCodeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	memberCodeAttempts = 5
)

// LoginResult 토큰 발급 결과. refresh token 원문은 쿠키로만 전달한다.
type LoginResult struct {
	Response     *LoginResponse
	RefreshToken string
	Provider     model.SocialProvider
}

type AuthService struct {
	db               *gorm.DB
	cfg              *config.Config
	authRepository   *AuthRepository
	memberRepository *member.MemberRepository
	providerClient   ProviderClient
	tokenManager     token.Manager
}

func NewAuthService(
	db *gorm.DB,
	cfg *config.Config,
	authRepository *AuthRepository,
	memberRepository *member.MemberRepository,
	providerClient ProviderClient,
	tokenManager token.Manager,
) *AuthService {
	return &AuthService{
		db:               db,
		cfg:              cfg,
		authRepository:   authRepository,
		memberRepository: memberRepository,
		providerClient:   providerClient,
		tokenManager:     tokenManager,
	}
}

// SocialLogin authorization code를 프로필로 교환하고 (provider, provider_id)로
// 회원을 찾거나 새로 만든다.
func (a *AuthService) SocialLogin(ctx context.Context, provider model.SocialProvider, request *SocialLoginRequest) (*LoginResult, error) {
	log := logger.FromContext(ctx)

	profile, err := a.providerClient.ExchangeProfile(ctx, provider, request.Code)
	if err != nil {
		log.Warn("소셜 프로필 교환 실패", "provider", provider, "error", err)
		return nil, err
	}

	var (
		loginMember *model.Member
		isNewMember bool
	)

	err = database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		account, err := a.authRepository.FindSocialAccount(ctx, tx, profile.Provider, profile.ProviderID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("소셜 계정 조회 실패: %w", err)
			}

			// 최초 로그인 - 회원 + 소셜 계정 생성
			newMember, err := a.createMember(ctx, tx, profile)
			if err != nil {
				return err
			}

			now := time.Now()
			account = &model.MemberSocialAccount{
				MemberID:    newMember.ID,
				Provider:    profile.Provider,
				ProviderID:  profile.ProviderID,
				LastLoginAt: &now,
			}
			if err := a.authRepository.CreateSocialAccount(ctx, tx, account); err != nil {
				return fmt.Errorf("소셜 계정 생성 실패: %w", err)
			}

			loginMember = newMember
			isNewMember = true
			return nil
		}

		found, err := a.memberRepository.FindByID(ctx, tx, account.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 탈퇴 회원의 소셜 계정 - 회원을 새로 만들어 재가입 처리
				newMember, err := a.createMember(ctx, tx, profile)
				if err != nil {
					return err
				}
				if err := tx.WithContext(ctx).
					Model(&model.MemberSocialAccount{}).
					Where("id = ?", account.ID).
					Update("member_id", newMember.ID).Error; err != nil {
					return fmt.Errorf("소셜 계정 재연결 실패: %w", err)
				}
				loginMember = newMember
				isNewMember = true
				return nil
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if err := a.authRepository.TouchSocialAccountLogin(ctx, tx, account.ID, time.Now()); err != nil {
			return fmt.Errorf("로그인 시각 갱신 실패: %w", err)
		}

		lastProvider := profile.Provider
		found.LastLoginProvider = &lastProvider
		if err := a.memberRepository.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("마지막 로그인 제공자 갱신 실패: %w", err)
		}

		loginMember = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := a.issueTokens(ctx, loginMember)
	if err != nil {
		return nil, err
	}
	result.Response.IsNewMember = isNewMember
	result.Provider = provider

	log.Info("소셜 로그인 성공",
		"provider", provider,
		"member_id", loginMember.ID,
		"new_member", isNewMember,
	)
	return result, nil
}

// Refresh refresh token 회전. 기존 토큰은 폐기하고 새 쌍을 발급한다.
func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokenManager.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != token.REFRESH {
		log.Warn("refresh token 검증 실패", "error", err)
		return nil, fmt.Errorf("refresh token 검증 실패 %w", ErrInvalidRefreshToken)
	}

	var loginMember *model.Member
	err = database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		stored, err := a.matchStoredToken(ctx, tx, claims.MemberID, refreshToken)
		if err != nil {
			return err
		}

		// 회전: 사용된 토큰은 즉시 폐기
		if err := a.authRepository.RevokeRefreshToken(ctx, tx, stored.ID); err != nil {
			return fmt.Errorf("refresh token 폐기 실패: %w", err)
		}

		found, err := a.memberRepository.FindByID(ctx, tx, claims.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("탈퇴한 회원 memberID=%d %w", claims.MemberID, ErrInvalidRefreshToken)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		loginMember = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := a.issueTokens(ctx, loginMember)
	if err != nil {
		return nil, err
	}

	log.Info("토큰 재발급 완료", "member_id", loginMember.ID)
	return result, nil
}

// Logout 회원의 모든 refresh token 폐기
func (a *AuthService) Logout(ctx context.Context, memberID int64) error {
	log := logger.FromContext(ctx)

	if err := a.authRepository.RevokeAllRefreshTokens(ctx, a.db, memberID); err != nil {
		return fmt.Errorf("로그아웃 실패: %w", err)
	}

	log.Info("로그아웃 완료", "member_id", memberID)
	return nil
}

func (a *AuthService) createMember(ctx context.Context, tx *gorm.DB, profile *SocialProfile) (*model.Member, error) {
	code, err := a.generateMemberCode(ctx, tx)
	if err != nil {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = "회원" + code[:4]
	}

	lastProvider := profile.Provider
	newMember := &model.Member{
		Name:              name,
		MemberCode:        code,
		Role:              model.RoleUser,
		LastLoginProvider: &lastProvider,
	}
	if err := a.memberRepository.Create(ctx, tx, newMember); err != nil {
		return nil, fmt.Errorf("회원 생성 실패: %w", err)
	}
	return newMember, nil
}

// generateMemberCode 8자리 영대문자/숫자 코드 생성. 충돌 시 재시도.
func (a *AuthService) generateMemberCode(ctx context.Context, tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < memberCodeAttempts; attempt++ {
		code, err := randomCode(memberCodeLength)
		if err != nil {
			return "", fmt.Errorf("회원 코드 생성 실패: %w", err)
		}

		exists, err := a.memberRepository.ExistsMemberCode(ctx, tx, code)
		if err != nil {
			return "", fmt.Errorf("회원 코드 중복 확인 실패: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("회원 코드 생성 재시도 초과")
}

// tokenDigest JWT는 bcrypt의 72바이트 입력 제한을 넘으므로 먼저 sha256으로 줄인다.
func tokenDigest(token string) []byte {
	digest := sha256.Sum256([]byte(token))
	return digest[:]
}

func randomCode(length int) (string, error) {
	code := make([]byte, length)
	max := big.NewInt(int64(len(memberCodeCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = memberCodeCharset[n.Int64()]
	}
	return string(code), nil
}

func (a *AuthService) issueTokens(ctx context.Context, loginMember *model.Member) (*LoginResult, error) {
	log := logger.FromContext(ctx)

	accessToken, err := a.tokenManager.GenerateAccessToken(loginMember.ID, string(loginMember.Role))
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(loginMember.ID, string(loginMember.Role))
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// refresh token은 해시로만 저장 (유출 대비)
	hash, err := bcrypt.GenerateFromPassword(tokenDigest(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("refresh token 해시 실패: %w", err)
	}

	stored := &model.RefreshToken{
		MemberID:  loginMember.ID,
		TokenHash: string(hash),
		ExpiresAt: time.Now().Add(a.cfg.JWT.RefreshExpiry),
	}
	if err := a.authRepository.CreateRefreshToken(ctx, a.db, stored); err != nil {
		return nil, fmt.Errorf("refresh token 저장 실패: %w", err)
	}

	return &LoginResult{
		Response: &LoginResponse{
			AccessToken:            accessToken,
			AdditionalInfoRequired: loginMember.AdditionalInfoRequired(),
		},
		RefreshToken: refreshToken,
	}, nil
}

func (a *AuthService) matchStoredToken(ctx context.Context, tx *gorm.DB, memberID int64, refreshToken string) (*model.RefreshToken, error) {
	tokens, err := a.authRepository.FindValidRefreshTokens(ctx, tx, memberID)
	if err != nil {
		return nil, fmt.Errorf("refresh token 조회 실패: %w", err)
	}

	digest := tokenDigest(refreshToken)
	for i := range tokens {
		if bcrypt.CompareHashAndPassword([]byte(tokens[i].TokenHash), digest) == nil {
			return &tokens[i], nil
		}
	}
	return nil, fmt.Errorf("저장된 refresh token 없음 memberID=%d %w", memberID, ErrInvalidRefreshToken)
}
