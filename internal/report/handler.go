package report

import (
	"net/http"
	"strconv"

	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService *ReportService
}

func NewReportHandler(reportService *ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Create POST /api/reports
func (h *ReportHandler) Create(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request CreateReportRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.reportService.CreateReport(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListMine GET /api/reports/my?page=&size=
func (h *ReportHandler) ListMine(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	response, err := h.reportService.ListMyReports(c.Request.Context(), memberID, page, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Stats GET /api/admin/reports/stats (관리자 전용)
func (h *ReportHandler) Stats(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	response, err := h.reportService.Stats(c.Request.Context())
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List GET /api/admin/reports?status=&page=&size= (관리자 전용)
func (h *ReportHandler) List(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	response, err := h.reportService.ListReports(c.Request.Context(), c.Query("status"), c.Query("targetType"), page, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListByTarget GET /api/admin/reports/target?targetType=&targetId= (관리자 전용)
func (h *ReportHandler) ListByTarget(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	targetType := c.Query("targetType")
	switch targetType {
	case "FEED", "COMMENT", "TOGETHER":
	default:
		handler.RespondError(c, nil, sharedError.InvalidRequest)
		return
	}

	targetID, err := strconv.ParseInt(c.Query("targetId"), 10, 64)
	if err != nil || targetID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	response, err := h.reportService.ListByTarget(c.Request.Context(), targetType, targetID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// ListByReportedMember GET /api/admin/reports/members/:memberId?page=&size= (관리자 전용)
func (h *ReportHandler) ListByReportedMember(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	memberID, err := strconv.ParseInt(c.Param("memberId"), 10, 64)
	if err != nil || memberID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	response, err := h.reportService.ListByReportedMember(c.Request.Context(), memberID, page, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// FrequentTargets GET /api/admin/reports/frequent-targets?minCount= (관리자 전용)
func (h *ReportHandler) FrequentTargets(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	minCount, _ := strconv.ParseInt(c.DefaultQuery("minCount", "0"), 10, 64)
	response, err := h.reportService.FrequentTargets(c.Request.Context(), minCount)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// FrequentReportedMembers GET /api/admin/reports/frequent-members?minCount= (관리자 전용)
func (h *ReportHandler) FrequentReportedMembers(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	minCount, _ := strconv.ParseInt(c.DefaultQuery("minCount", "0"), 10, 64)
	response, err := h.reportService.FrequentReportedMembers(c.Request.Context(), minCount)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// UpdateStatus PATCH /api/admin/reports/:reportId/status (관리자 전용)
func (h *ReportHandler) UpdateStatus(c *gin.Context) {
	adminID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	reportID, err := strconv.ParseInt(c.Param("reportId"), 10, 64)
	if err != nil || reportID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	var request UpdateStatusRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.reportService.UpdateStatus(c.Request.Context(), adminID, reportID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
