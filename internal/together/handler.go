package together

import (
	"net/http"
	"strconv"

	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"github.com/gin-gonic/gin"
)

type TogetherHandler struct {
	togetherService *TogetherService
}

func NewTogetherHandler(togetherService *TogetherService) *TogetherHandler {
	return &TogetherHandler{
		togetherService: togetherService,
	}
}

// Create POST /api/togethers
func (h *TogetherHandler) Create(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request CreateTogetherRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.togetherService.Create(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get GET /api/togethers/:togetherId
func (h *TogetherHandler) Get(c *gin.Context) {
	togetherID, ok := parseTogetherID(c)
	if !ok {
		return
	}

	response, err := h.togetherService.Get(c.Request.Context(), togetherID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List GET /api/togethers?status=&lastTogetherId=&size=
func (h *TogetherHandler) List(c *gin.Context) {
	cursor := pagination.ParseCursor(c.Query("lastTogetherId"))
	size := pagination.ParseScrollSize(c.Query("size"))

	response, err := h.togetherService.Scroll(c.Request.Context(), c.Query("status"), cursor, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update PUT /api/togethers/:togetherId
func (h *TogetherHandler) Update(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	togetherID, ok := parseTogetherID(c)
	if !ok {
		return
	}

	var request UpdateTogetherRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.togetherService.Update(c.Request.Context(), memberID, togetherID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete DELETE /api/togethers/:togetherId
func (h *TogetherHandler) Delete(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	togetherID, ok := parseTogetherID(c)
	if !ok {
		return
	}

	if err := h.togetherService.Delete(c.Request.Context(), memberID, togetherID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Join POST /api/togethers/:togetherId/participants
func (h *TogetherHandler) Join(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	togetherID, ok := parseTogetherID(c)
	if !ok {
		return
	}

	if err := h.togetherService.Join(c.Request.Context(), memberID, togetherID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{})
}

// Leave DELETE /api/togethers/:togetherId/participants
func (h *TogetherHandler) Leave(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	togetherID, ok := parseTogetherID(c)
	if !ok {
		return
	}

	if err := h.togetherService.Leave(c.Request.Context(), memberID, togetherID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func parseTogetherID(c *gin.Context) (int64, bool) {
	togetherID, err := strconv.ParseInt(c.Param("togetherId"), 10, 64)
	if err != nil || togetherID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return 0, false
	}
	return togetherID, true
}
