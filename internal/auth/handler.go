package auth

import (
	"net/http"
	"strings"

	"github.com/team-moa/moa-api-server/internal/config"
	"github.com/team-moa/moa-api-server/internal/model"
	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

const (
	refreshTokenCookie      = "refreshToken"
	lastProviderCookie      = "lastLoginProvider"
	refreshCookieMaxAge     = 7 * 24 * 60 * 60  // 7일
	lastProviderCookieAge   = 30 * 24 * 60 * 60 // 30일
	refreshCookiePath       = "/api/auth"
	lastProviderCookieValue = "/"
)

type AuthHandler struct {
	cfg         *config.Config
	authService *AuthService
}

func NewAuthHandler(cfg *config.Config, authService *AuthService) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		authService: authService,
	}
}

// SocialLogin POST /api/auth/login/:provider
func (a *AuthHandler) SocialLogin(c *gin.Context) {
	provider, ok := parseProvider(c.Param("provider"))
	if !ok {
		handler.RespondError(c, ErrUnsupportedProvider, sharedError.ErrorResponse{
			Status:  http.StatusBadRequest,
			Code:    "AUTH-001",
			Message: "지원하지 않는 소셜 로그인입니다.",
		})
		return
	}

	var request SocialLoginRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	result, err := a.authService.SocialLogin(c.Request.Context(), provider, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	a.setAuthCookies(c, result)
	c.JSON(http.StatusOK, result.Response)
}

// Refresh POST /api/auth/refresh - 쿠키의 refresh token으로 새 토큰 쌍 발급
func (a *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		handler.RespondDomainError(c, ErrInvalidRefreshToken)
		return
	}

	result, err := a.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		a.clearRefreshCookie(c)
		handler.RespondDomainError(c, err)
		return
	}

	a.setRefreshCookie(c, result.RefreshToken)
	c.JSON(http.StatusOK, &RefreshResponse{AccessToken: result.Response.AccessToken})
}

// Logout POST /api/auth/logout
func (a *AuthHandler) Logout(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	if err := a.authService.Logout(c.Request.Context(), memberID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	a.clearRefreshCookie(c)
	c.JSON(http.StatusNoContent, nil)
}

func (a *AuthHandler) setAuthCookies(c *gin.Context, result *LoginResult) {
	a.setRefreshCookie(c, result.RefreshToken)

	// 다음 방문 때 로그인 버튼 하이라이트용 (HttpOnly 아님)
	c.SetCookie(lastProviderCookie, string(result.Provider),
		lastProviderCookieAge, lastProviderCookieValue, a.cfg.Cookie.Domain, a.cfg.Cookie.Secure, false)
}

func (a *AuthHandler) setRefreshCookie(c *gin.Context, refreshToken string) {
	c.SetCookie(refreshTokenCookie, refreshToken,
		refreshCookieMaxAge, refreshCookiePath, a.cfg.Cookie.Domain, a.cfg.Cookie.Secure, true)
}

func (a *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshTokenCookie, "", -1, refreshCookiePath, a.cfg.Cookie.Domain, a.cfg.Cookie.Secure, true)
}

func parseProvider(raw string) (model.SocialProvider, bool) {
	switch strings.ToUpper(raw) {
	case string(model.ProviderGoogle):
		return model.ProviderGoogle, true
	case string(model.ProviderKakao):
		return model.ProviderKakao, true
	case string(model.ProviderNaver):
		return model.ProviderNaver, true
	default:
		return "", false
	}
}
