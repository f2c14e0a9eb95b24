package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/team-moa/moa-api-server/internal/config"
	"github.com/team-moa/moa-api-server/internal/model"
)

// SocialProfile 소셜 제공자가 돌려주는 최소 프로필
type SocialProfile struct {
	Provider   model.SocialProvider
	ProviderID string
	Name       string
	Email      *string
}

// ProviderClient exchanges an authorization code for a user profile.
// 테스트에서는 가짜 구현으로 대체한다.
type ProviderClient interface {
	ExchangeProfile(ctx context.Context, provider model.SocialProvider, code string) (*SocialProfile, error)
}

const (
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

	naverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// OAuth2Client is the production ProviderClient backed by each provider's
// authorization-code token endpoint and user info API.
type OAuth2Client struct {
	cfg        *config.OAuthConfig
	httpClient *http.Client
}

func NewOAuth2Client(cfg *config.OAuthConfig) *OAuth2Client {
	return &OAuth2Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *OAuth2Client) ExchangeProfile(ctx context.Context, provider model.SocialProvider, code string) (*SocialProfile, error) {
	switch provider {
	case model.ProviderGoogle:
		return c.exchangeGoogle(ctx, code)
	case model.ProviderKakao:
		return c.exchangeKakao(ctx, code)
	case model.ProviderNaver:
		return c.exchangeNaver(ctx, code)
	default:
		return nil, fmt.Errorf("provider=%s %w", provider, ErrUnsupportedProvider)
	}
}

func (c *OAuth2Client) exchangeGoogle(ctx context.Context, code string) (*SocialProfile, error) {
	accessToken, err := c.fetchAccessToken(ctx, googleTokenURL, c.cfg.Google, code)
	if err != nil {
		return nil, err
	}

	var userInfo struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.fetchUserInfo(ctx, googleUserInfoURL, accessToken, &userInfo); err != nil {
		return nil, err
	}
	if userInfo.ID == "" {
		return nil, fmt.Errorf("google 프로필에 id 없음 %w", ErrProviderAuthFailed)
	}

	profile := &SocialProfile{
		Provider:   model.ProviderGoogle,
		ProviderID: userInfo.ID,
		Name:       userInfo.Name,
	}
	if userInfo.Email != "" {
		profile.Email = &userInfo.Email
	}
	return profile, nil
}

func (c *OAuth2Client) exchangeKakao(ctx context.Context, code string) (*SocialProfile, error) {
	accessToken, err := c.fetchAccessToken(ctx, kakaoTokenURL, c.cfg.Kakao, code)
	if err != nil {
		return nil, err
	}

	var userInfo struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname string `json:"nickname"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := c.fetchUserInfo(ctx, kakaoUserInfoURL, accessToken, &userInfo); err != nil {
		return nil, err
	}
	if userInfo.ID == 0 {
		return nil, fmt.Errorf("kakao 프로필에 id 없음 %w", ErrProviderAuthFailed)
	}

	profile := &SocialProfile{
		Provider:   model.ProviderKakao,
		ProviderID: fmt.Sprintf("%d", userInfo.ID),
		Name:       userInfo.KakaoAccount.Profile.Nickname,
	}
	if userInfo.KakaoAccount.Email != "" {
		profile.Email = &userInfo.KakaoAccount.Email
	}
	return profile, nil
}

func (c *OAuth2Client) exchangeNaver(ctx context.Context, code string) (*SocialProfile, error) {
	accessToken, err := c.fetchAccessToken(ctx, naverTokenURL, c.cfg.Naver, code)
	if err != nil {
		return nil, err
	}

	var userInfo struct {
		Response struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"response"`
	}
	if err := c.fetchUserInfo(ctx, naverUserInfoURL, accessToken, &userInfo); err != nil {
		return nil, err
	}
	if userInfo.Response.ID == "" {
		return nil, fmt.Errorf("naver 프로필에 id 없음 %w", ErrProviderAuthFailed)
	}

	profile := &SocialProfile{
		Provider:   model.ProviderNaver,
		ProviderID: userInfo.Response.ID,
		Name:       userInfo.Response.Name,
	}
	if userInfo.Response.Email != "" {
		profile.Email = &userInfo.Response.Email
	}
	return profile, nil
}

func (c *OAuth2Client) fetchAccessToken(ctx context.Context, tokenURL string, providerCfg config.OAuthProviderConfig, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", providerCfg.ClientID)
	form.Set("client_secret", providerCfg.ClientSecret)
	form.Set("redirect_uri", providerCfg.RedirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("token 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token 응답 status=%d %w", resp.StatusCode, ErrProviderAuthFailed)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("token 응답 파싱 실패: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("access token 없음 %w", ErrProviderAuthFailed)
	}

	return tokenResp.AccessToken, nil
}

func (c *OAuth2Client) fetchUserInfo(ctx context.Context, userInfoURL, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return fmt.Errorf("프로필 요청 생성 실패: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("프로필 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("프로필 응답 status=%d %w", resp.StatusCode, ErrProviderAuthFailed)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("프로필 응답 파싱 실패: %w", err)
	}
	return nil
}
