package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/team-moa/moa-api-server/internal/auth"
	"github.com/team-moa/moa-api-server/internal/member"
	"github.com/team-moa/moa-api-server/internal/model"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/middleware"
	"github.com/team-moa/moa-api-server/internal/shared/testutil"
	"github.com/team-moa/moa-api-server/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeProviderClient returns a fixed profile instead of calling provider APIs
type fakeProviderClient struct {
	profile *auth.SocialProfile
	err     error
}

func (f *fakeProviderClient) ExchangeProfile(ctx context.Context, provider model.SocialProvider, code string) (*auth.SocialProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

// setupAuthRouter wires the auth stack with a fake provider and real JWT manager
func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB, *fakeProviderClient) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	email := "tester@example.com"
	fakeProvider := &fakeProviderClient{
		profile: &auth.SocialProfile{
			Provider:   model.ProviderKakao,
			ProviderID: "kakao-12345",
			Name:       "테스트회원",
			Email:      &email,
		},
	}

	memberRepo := member.NewMemberRepository()
	authRepo := auth.NewAuthRepository()
	tokenManager := token.NewJWTManager(cfg)
	authService := auth.NewAuthService(db, cfg, authRepo, memberRepo, fakeProvider, tokenManager)
	authHandler := auth.NewAuthHandler(cfg, authService)

	router := testutil.SetupTestRouter()
	router.POST("/api/auth/login/:provider", authHandler.SocialLogin)
	router.POST("/api/auth/refresh", authHandler.Refresh)
	router.POST("/api/auth/logout", middleware.JWT(cfg), authHandler.Logout)

	return router, db, fakeProvider
}

func refreshCookieValue(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "refreshToken" && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatal("refreshToken 쿠키가 설정되지 않음")
	return ""
}

func TestSocialLogin_NewMember(t *testing.T) {
	router, db, _ := setupAuthRouter(t)

	// When: 처음 보는 소셜 계정으로 로그인
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/login/kakao",
		Body:   auth.SocialLoginRequest{Code: "auth-code"},
	})

	// Then: 회원이 생성되고 추가 정보 입력이 필요한 상태
	assert.Equal(t, http.StatusOK, recorder.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.NotEmpty(t, response.AccessToken)
	assert.True(t, response.IsNewMember)
	assert.True(t, response.AdditionalInfoRequired)

	assert.NotEmpty(t, refreshCookieValue(t, recorder))

	var memberCount int64
	require.NoError(t, db.Model(&model.Member{}).Count(&memberCount).Error)
	assert.Equal(t, int64(1), memberCount)

	var account model.MemberSocialAccount
	require.NoError(t, db.First(&account).Error)
	assert.Equal(t, model.ProviderKakao, account.Provider)
	assert.Equal(t, "kakao-12345", account.ProviderID)
}

func TestSocialLogin_ExistingMember(t *testing.T) {
	router, db, _ := setupAuthRouter(t)

	request := testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/login/kakao",
		Body:   auth.SocialLoginRequest{Code: "auth-code"},
	}

	first := testutil.ExecuteRequest(t, router, request)
	require.Equal(t, http.StatusOK, first.Code)

	// When: 같은 소셜 계정으로 다시 로그인
	second := testutil.ExecuteRequest(t, router, request)

	// Then: 기존 회원으로 로그인되고 회원이 중복 생성되지 않음
	assert.Equal(t, http.StatusOK, second.Code)

	var response auth.LoginResponse
	testutil.ParseResponse(t, second, &response)
	assert.False(t, response.IsNewMember)

	var memberCount int64
	require.NoError(t, db.Model(&model.Member{}).Count(&memberCount).Error)
	assert.Equal(t, int64(1), memberCount)
}

func TestSocialLogin_UnsupportedProvider(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/login/apple",
		Body:   auth.SocialLoginRequest{Code: "auth-code"},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-001", errorResponse.Code)
}

func TestSocialLogin_ProviderAuthFailed(t *testing.T) {
	router, _, fakeProvider := setupAuthRouter(t)
	fakeProvider.err = auth.ErrProviderAuthFailed
	fakeProvider.profile = nil

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/login/kakao",
		Body:   auth.SocialLoginRequest{Code: "bad-code"},
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "AUTH-002", errorResponse.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	login := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/login/kakao",
		Body:   auth.SocialLoginRequest{Code: "auth-code"},
	})
	require.Equal(t, http.StatusOK, login.Code)
	oldRefresh := refreshCookieValue(t, login)

	// When: 쿠키의 refresh token으로 재발급
	refreshed := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/auth/refresh",
		Headers: map[string]string{"Cookie": "refreshToken=" + oldRefresh},
	})

	// Then: 새 access token이 발급됨
	assert.Equal(t, http.StatusOK, refreshed.Code)

	var response auth.RefreshResponse
	testutil.ParseResponse(t, refreshed, &response)
	assert.NotEmpty(t, response.AccessToken)

	// Then: 회전된 이전 토큰은 더 이상 쓸 수 없음
	reused := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/auth/refresh",
		Headers: map[string]string{"Cookie": "refreshToken=" + oldRefresh},
	})
	assert.Equal(t, http.StatusUnauthorized, reused.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, reused, &errorResponse)
	assert.Equal(t, "AUTH-004", errorResponse.Code)
}

func TestRefresh_MissingCookie(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/refresh",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLogout_RevokesRefreshTokens(t *testing.T) {
	router, _, _ := setupAuthRouter(t)

	login := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/auth/login/kakao",
		Body:   auth.SocialLoginRequest{Code: "auth-code"},
	})
	require.Equal(t, http.StatusOK, login.Code)

	var loginResponse auth.LoginResponse
	testutil.ParseResponse(t, login, &loginResponse)
	refresh := refreshCookieValue(t, login)

	// When: 로그아웃
	logout := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/auth/logout",
		Headers: map[string]string{"Authorization": "Bearer " + loginResponse.AccessToken},
	})
	require.Equal(t, http.StatusNoContent, logout.Code)

	// Then: 기존 refresh token이 전부 폐기됨
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/auth/refresh",
		Headers: map[string]string{"Cookie": "refreshToken=" + refresh},
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
