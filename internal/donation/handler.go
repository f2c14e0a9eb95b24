package donation

import (
	"net/http"
	"strconv"

	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationService *DonationService
}

func NewDonationHandler(donationService *DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// Create POST /api/admin/donations (관리자 전용)
func (h *DonationHandler) Create(c *gin.Context) {
	if _, ok := sharedContext.RequireMemberID(c); !ok {
		return
	}
	if !sharedContext.RequireAdmin(c) {
		return
	}

	var request CreateDonationRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.donationService.CreateDonation(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get GET /api/donations/:donationId
func (h *DonationHandler) Get(c *gin.Context) {
	donationID, err := strconv.ParseInt(c.Param("donationId"), 10, 64)
	if err != nil || donationID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	response, err := h.donationService.GetDonation(c.Request.Context(), donationID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List GET /api/donations?lastDonationId=&size=
func (h *DonationHandler) List(c *gin.Context) {
	cursor := pagination.ParseCursor(c.Query("lastDonationId"))
	size := pagination.ParseScrollSize(c.Query("size"))

	response, err := h.donationService.Scroll(c.Request.Context(), cursor, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListDonors GET /api/donations/:donationId/donors?page=&size=
func (h *DonationHandler) ListDonors(c *gin.Context) {
	donationID, err := strconv.ParseInt(c.Param("donationId"), 10, 64)
	if err != nil || donationID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	response, err := h.donationService.ListDonors(c.Request.Context(), donationID, page, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ConfirmPayment POST /api/donations/payments/confirm
func (h *DonationHandler) ConfirmPayment(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request ConfirmPaymentRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.donationService.ConfirmPayment(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
