package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
	}
}

func (s *MemberService) GetProfile(ctx context.Context, memberID int64) (*GetProfileResponse, error) {
	member, err := s.memberRepository.FindByID(ctx, s.db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	return NewGetProfileResponse(member), nil
}

func (s *MemberService) GetPublicProfile(ctx context.Context, memberID int64) (*PublicProfileResponse, error) {
	member, err := s.memberRepository.FindByID(ctx, s.db, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
		}
		return nil, fmt.Errorf("회원 조회 실패: %w", err)
	}

	return NewPublicProfileResponse(member), nil
}

func (s *MemberService) UpdateProfile(ctx context.Context, memberID int64, request *UpdateProfileRequest) (*GetProfileResponse, error) {
	log := logger.FromContext(ctx)

	var response *GetProfileResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if request.Nickname != nil && (member.Nickname == nil || *member.Nickname != *request.Nickname) {
			exists, err := s.memberRepository.ExistsActiveNickname(ctx, tx, *request.Nickname)
			if err != nil {
				return fmt.Errorf("닉네임 중복 확인 실패: %w", err)
			}
			if exists {
				return fmt.Errorf("nickname=%s %w", *request.Nickname, ErrNicknameAlreadyExists)
			}
			member.Nickname = request.Nickname
		}

		if request.ProfileImageURL != nil {
			member.ProfileImageURL = request.ProfileImageURL
		}

		if err := s.memberRepository.Update(ctx, tx, member); err != nil {
			return fmt.Errorf("프로필 수정 실패: %w", err)
		}

		response = NewGetProfileResponse(member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("프로필 수정 완료", "member_id", memberID)
	return response, nil
}

// CompleteAdditionalInfo 소셜 가입 직후 닉네임/이메일 입력.
// 이미 입력이 끝난 회원은 409를 받는다.
func (s *MemberService) CompleteAdditionalInfo(ctx context.Context, memberID int64, request *CompleteAdditionalInfoRequest) (*GetProfileResponse, error) {
	log := logger.FromContext(ctx)

	var response *GetProfileResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if !member.AdditionalInfoRequired() {
			return fmt.Errorf("memberID=%d %w", memberID, ErrAdditionalInfoDone)
		}

		nicknameExists, err := s.memberRepository.ExistsActiveNickname(ctx, tx, request.Nickname)
		if err != nil {
			return fmt.Errorf("닉네임 중복 확인 실패: %w", err)
		}
		if nicknameExists {
			return fmt.Errorf("nickname=%s %w", request.Nickname, ErrNicknameAlreadyExists)
		}

		emailExists, err := s.memberRepository.ExistsActiveEmail(ctx, tx, request.Email)
		if err != nil {
			return fmt.Errorf("이메일 중복 확인 실패: %w", err)
		}
		if emailExists {
			return fmt.Errorf("email=%s %w", logger.MaskEmail(request.Email), ErrEmailAlreadyExists)
		}

		member.Nickname = &request.Nickname
		member.Email = &request.Email

		if err := s.memberRepository.Update(ctx, tx, member); err != nil {
			return fmt.Errorf("추가 정보 저장 실패: %w", err)
		}

		response = NewGetProfileResponse(member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("추가 정보 입력 완료", "member_id", memberID)
	return response, nil
}

func (s *MemberService) CheckNicknameAvailable(ctx context.Context, nickname string) (*NicknameAvailableResponse, error) {
	exists, err := s.memberRepository.ExistsActiveNickname(ctx, s.db, nickname)
	if err != nil {
		return nil, fmt.Errorf("닉네임 중복 확인 실패: %w", err)
	}

	return &NicknameAvailableResponse{
		Nickname:  nickname,
		Available: !exists,
	}, nil
}

func (s *MemberService) CheckEmailAvailable(ctx context.Context, email string) (*EmailAvailableResponse, error) {
	exists, err := s.memberRepository.ExistsActiveEmail(ctx, s.db, email)
	if err != nil {
		return nil, fmt.Errorf("이메일 중복 확인 실패: %w", err)
	}

	return &EmailAvailableResponse{
		Email:     email,
		Available: !exists,
	}, nil
}

// Withdraw 회원 탈퇴 (소프트 삭제 + refresh token 전체 폐기)
func (s *MemberService) Withdraw(ctx context.Context, memberID int64) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.memberRepository.FindByID(ctx, tx, memberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		if err := s.memberRepository.SoftDelete(ctx, tx, memberID); err != nil {
			return fmt.Errorf("회원 탈퇴 실패: %w", err)
		}

		// 남은 세션 전부 무효화
		if err := tx.WithContext(ctx).
			Model(&model.RefreshToken{}).
			Where("member_id = ? AND revoked = ?", memberID, false).
			Update("revoked", true).Error; err != nil {
			return fmt.Errorf("refresh token 폐기 실패: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("회원 탈퇴 완료", "member_id", memberID)
	return nil
}
