package member

import (
	"net/http"
	"strconv"

	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	response, err := h.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GetPublicProfile(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("memberId"), 10, 64)
	if err != nil || targetID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	response, err := h.memberService.GetPublicProfile(c.Request.Context(), targetID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request UpdateProfileRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.UpdateProfile(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) CompleteAdditionalInfo(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request CompleteAdditionalInfoRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.CompleteAdditionalInfo(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) CheckNickname(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		handler.RespondError(c, nil, sharedError.InvalidRequest)
		return
	}

	response, err := h.memberService.CheckNicknameAvailable(c.Request.Context(), nickname)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		handler.RespondError(c, nil, sharedError.InvalidRequest)
		return
	}

	response, err := h.memberService.CheckEmailAvailable(c.Request.Context(), email)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Withdraw(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	if err := h.memberService.Withdraw(c.Request.Context(), memberID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
