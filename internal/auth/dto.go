package auth

type SocialLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

type LoginResponse struct {
	AccessToken            string `json:"accessToken"`
	AdditionalInfoRequired bool   `json:"additionalInfoRequired"`
	IsNewMember            bool   `json:"isNewMember"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}
