package context

import (
	"net/http"

	"github.com/team-moa/moa-api-server/internal/shared/logger"

	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/gin-gonic/gin"
)

// Context keys for storing user authentication information
const (
	MemberIDKey   = "member_id"
	MemberRoleKey = "member_role"
)

const AdminRole = "ADMIN"

func GetMemberID(c *gin.Context) (int64, bool) {
	memberID, exists := c.Get(MemberIDKey)
	if !exists {
		return 0, false
	}

	id, ok := memberID.(int64)
	if !ok || id <= 0 {
		return 0, false
	}

	return id, true
}

func GetMemberRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(MemberRoleKey)
	if !exists {
		return "", false
	}

	roleStr, ok := role.(string)
	if !ok || roleStr == "" {
		return "", false
	}

	return roleStr, true
}

// RequireMemberID retrieves the authenticated user's ID from the Gin context.
// If the user ID is not found, automatically sends an authentication error response.
// Returns the user ID and true if found, zero and false if not found (error already sent).
// Use this in most handlers to reduce boilerplate.
func RequireMemberID(c *gin.Context) (int64, bool) {
	memberID, ok := GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "로그인을 해주세요.",
		}.WithTimestamp())
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] context에 회원 ID가 존재하지 않습니다.")
		return 0, false
	}
	return memberID, true
}

// OptionalMemberID retrieves the member ID if the request was authenticated.
// Public endpoints use this to personalize responses without requiring login.
func OptionalMemberID(c *gin.Context) *int64 {
	memberID, ok := GetMemberID(c)
	if !ok {
		return nil
	}
	return &memberID
}

// RequireAdmin checks the authenticated user's role is ADMIN.
// Sends a 403 response and returns false if not.
func RequireAdmin(c *gin.Context) bool {
	role, ok := GetMemberRole(c)
	if !ok || role != AdminRole {
		c.JSON(http.StatusForbidden, sharedError.ErrorResponse{
			Status:  http.StatusForbidden,
			Code:    "AUTH-003",
			Message: "관리자 권한이 필요합니다.",
		}.WithTimestamp())
		c.Abort()
		return false
	}
	return true
}
