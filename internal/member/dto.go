package member

import "github.com/team-moa/moa-api-server/internal/model"

type GetProfileResponse struct {
	ID                     int64   `json:"id"`
	Name                   string  `json:"name"`
	Nickname               *string `json:"nickname"`
	Email                  *string `json:"email"`
	MemberCode             string  `json:"memberCode"`
	ProfileImageURL        *string `json:"profileImageUrl"`
	Role                   string  `json:"role"`
	AdditionalInfoRequired bool    `json:"additionalInfoRequired"`
}

func NewGetProfileResponse(m *model.Member) *GetProfileResponse {
	return &GetProfileResponse{
		ID:                     m.ID,
		Name:                   m.Name,
		Nickname:               m.Nickname,
		Email:                  m.Email,
		MemberCode:             m.MemberCode,
		ProfileImageURL:        m.ProfileImageURL,
		Role:                   string(m.Role),
		AdditionalInfoRequired: m.AdditionalInfoRequired(),
	}
}

// PublicProfileResponse 다른 회원에게 노출되는 프로필
type PublicProfileResponse struct {
	ID              int64   `json:"id"`
	Nickname        *string `json:"nickname"`
	MemberCode      string  `json:"memberCode"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func NewPublicProfileResponse(m *model.Member) *PublicProfileResponse {
	return &PublicProfileResponse{
		ID:              m.ID,
		Nickname:        m.Nickname,
		MemberCode:      m.MemberCode,
		ProfileImageURL: m.ProfileImageURL,
	}
}

type UpdateProfileRequest struct {
	Nickname        *string `json:"nickname" binding:"omitempty,nickname"`
	ProfileImageURL *string `json:"profileImageUrl" binding:"omitempty,url,max=500"`
}

// CompleteAdditionalInfoRequest 소셜 가입 직후 추가 정보 입력
type CompleteAdditionalInfoRequest struct {
	Nickname string `json:"nickname" binding:"required,nickname"`
	Email    string `json:"email" binding:"required,email,max=100"`
}

type NicknameAvailableResponse struct {
	Nickname  string `json:"nickname"`
	Available bool   `json:"available"`
}

type EmailAvailableResponse struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}
