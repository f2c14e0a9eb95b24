package token_test

import (
	"testing"

	"github.com/team-moa/moa-api-server/internal/shared/testutil"
	"github.com/team-moa/moa-api-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefreshToken_UniquePerIssue(t *testing.T) {
	manager := token.NewJWTManager(testutil.NewTestConfig())

	// 같은 초에 발급돼도 회전 시 이전 토큰과 구별되어야 한다
	first, err := manager.GenerateRefreshToken(1, "USER")
	require.NoError(t, err)
	second, err := manager.GenerateRefreshToken(1, "USER")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	manager := token.NewJWTManager(testutil.NewTestConfig())

	accessToken, err := manager.GenerateAccessToken(42, "ADMIN")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.MemberID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, token.ACCESS, claims.TokenType)
}

func TestValidateToken_Garbage(t *testing.T) {
	manager := token.NewJWTManager(testutil.NewTestConfig())

	_, err := manager.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
