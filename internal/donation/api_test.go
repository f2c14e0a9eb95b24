package donation_test

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/team-moa/moa-api-server/internal/donation"
	"github.com/team-moa/moa-api-server/internal/model"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/middleware"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"github.com/team-moa/moa-api-server/internal/shared/testutil"
	"github.com/team-moa/moa-api-server/internal/shared/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeTossClient returns canned confirm results instead of calling the Toss API
type fakeTossClient struct {
	status string
	err    error
}

func (f *fakeTossClient) Confirm(ctx context.Context, request *donation.TossConfirmRequest) (*donation.TossConfirmResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	now := time.Now()
	return &donation.TossConfirmResult{
		PaymentKey:  request.PaymentKey,
		OrderID:     request.OrderID,
		Status:      f.status,
		TotalAmount: request.Amount,
		ApprovedAt:  &now,
		Method:      "카드",
	}, nil
}

type donationTestEnv struct {
	router       *gin.Engine
	db           *gorm.DB
	tokenManager token.Manager
	tossClient   *fakeTossClient
}

func setupDonationRouter(t *testing.T) *donationTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	tokenManager := token.NewJWTManager(cfg)
	tossClient := &fakeTossClient{status: string(model.TossPaymentDone)}

	donationRepo := donation.NewDonationRepository()
	donationService := donation.NewDonationService(db, donationRepo, tossClient)
	donationHandler := donation.NewDonationHandler(donationService)

	jwt := middleware.JWT(cfg)

	router := testutil.SetupTestRouter()
	router.GET("/api/donations", donationHandler.List)
	router.GET("/api/donations/:donationId", donationHandler.Get)
	router.GET("/api/donations/:donationId/donors", donationHandler.ListDonors)
	router.POST("/api/donations/payments/confirm", jwt, donationHandler.ConfirmPayment)
	router.POST("/api/admin/donations", jwt, donationHandler.Create)

	return &donationTestEnv{
		router:       router,
		db:           db,
		tokenManager: tokenManager,
		tossClient:   tossClient,
	}
}

var memberCodeSeq int64

func (e *donationTestEnv) createMember(t *testing.T, nickname string, role model.MemberRole) *model.Member {
	t.Helper()

	email := nickname + "@example.com"
	newMember := &model.Member{
		Name:       nickname,
		Nickname:   &nickname,
		Email:      &email,
		MemberCode: fmt.Sprintf("%08d", atomic.AddInt64(&memberCodeSeq, 1)),
		Role:       role,
	}
	require.NoError(t, e.db.Create(newMember).Error)
	return newMember
}

func (e *donationTestEnv) authHeader(t *testing.T, m *model.Member) map[string]string {
	t.Helper()

	accessToken, err := e.tokenManager.GenerateAccessToken(m.ID, string(m.Role))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + accessToken}
}

func (e *donationTestEnv) createDonation(t *testing.T, endDate *time.Time) *model.Donation {
	t.Helper()

	newDonation := &model.Donation{
		Title:        "유기동물 보호소 후원",
		Description:  "보호소 운영비 모금",
		TargetAmount: 1_000_000,
		EndDate:      endDate,
	}
	require.NoError(t, e.db.Create(newDonation).Error)
	return newDonation
}

func TestCreateDonation_AdminOnly(t *testing.T) {
	env := setupDonationRouter(t)
	user := env.createMember(t, "user", model.RoleUser)
	admin := env.createMember(t, "admin", model.RoleAdmin)

	request := donation.CreateDonationRequest{
		Title:        "유기동물 보호소 후원",
		TargetAmount: 1_000_000,
	}

	denied := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/admin/donations",
		Body:    request,
		Headers: env.authHeader(t, user),
	})
	assert.Equal(t, http.StatusForbidden, denied.Code)

	created := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/admin/donations",
		Body:    request,
		Headers: env.authHeader(t, admin),
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var response donation.DonationResponse
	testutil.ParseResponse(t, created, &response)
	assert.Equal(t, int64(0), response.CurrentAmount)
}

func TestConfirmPayment_AddsAmount(t *testing.T) {
	env := setupDonationRouter(t)
	donor := env.createMember(t, "donor", model.RoleUser)
	campaign := env.createDonation(t, nil)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/donations/payments/confirm",
		Body: donation.ConfirmPaymentRequest{
			DonationID: campaign.ID,
			PaymentKey: "pay-key-1",
			OrderID:    "order-1",
			Amount:     10_000,
		},
		Headers: env.authHeader(t, donor),
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response donation.ConfirmPaymentResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, int64(10_000), response.CurrentAmount)

	var stored model.TossPayment
	require.NoError(t, env.db.First(&stored).Error)
	assert.Equal(t, "pay-key-1", stored.PaymentKey)
	assert.Equal(t, model.TossPaymentDone, stored.Status)
}

func TestConfirmPayment_DuplicatePaymentKey(t *testing.T) {
	env := setupDonationRouter(t)
	donor := env.createMember(t, "donor", model.RoleUser)
	campaign := env.createDonation(t, nil)

	request := donation.ConfirmPaymentRequest{
		DonationID: campaign.ID,
		PaymentKey: "pay-key-dup",
		OrderID:    "order-1",
		Amount:     10_000,
	}

	first := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: "/api/donations/payments/confirm",
		Body: request, Headers: env.authHeader(t, donor),
	})
	require.Equal(t, http.StatusOK, first.Code)

	second := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: "/api/donations/payments/confirm",
		Body: request, Headers: env.authHeader(t, donor),
	})
	assert.Equal(t, http.StatusConflict, second.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, second, &errorResponse)
	assert.Equal(t, "DONATION-004", errorResponse.Code)

	// 금액은 한 번만 반영
	var campaignRow model.Donation
	require.NoError(t, env.db.First(&campaignRow, campaign.ID).Error)
	assert.Equal(t, int64(10_000), campaignRow.CurrentAmount)
}

func TestConfirmPayment_ClosedCampaign(t *testing.T) {
	env := setupDonationRouter(t)
	donor := env.createMember(t, "donor", model.RoleUser)

	past := time.Now().Add(-24 * time.Hour)
	campaign := env.createDonation(t, &past)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/donations/payments/confirm",
		Body: donation.ConfirmPaymentRequest{
			DonationID: campaign.ID,
			PaymentKey: "pay-key-2",
			OrderID:    "order-2",
			Amount:     10_000,
		},
		Headers: env.authHeader(t, donor),
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "DONATION-002", errorResponse.Code)
}

func TestConfirmPayment_NotDone(t *testing.T) {
	env := setupDonationRouter(t)
	donor := env.createMember(t, "donor", model.RoleUser)
	campaign := env.createDonation(t, nil)

	env.tossClient.status = "CANCELED"

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/donations/payments/confirm",
		Body: donation.ConfirmPaymentRequest{
			DonationID: campaign.ID,
			PaymentKey: "pay-key-3",
			OrderID:    "order-3",
			Amount:     10_000,
		},
		Headers: env.authHeader(t, donor),
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "DONATION-003", errorResponse.Code)

	// 실패한 결제는 기록되지 않는다
	var count int64
	require.NoError(t, env.db.Model(&model.TossPayment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestConfirmPayment_ConfirmCallFails(t *testing.T) {
	env := setupDonationRouter(t)
	donor := env.createMember(t, "donor", model.RoleUser)
	campaign := env.createDonation(t, nil)

	env.tossClient.err = donation.ErrPaymentConfirmFail

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/donations/payments/confirm",
		Body: donation.ConfirmPaymentRequest{
			DonationID: campaign.ID,
			PaymentKey: "pay-key-4",
			OrderID:    "order-4",
			Amount:     10_000,
		},
		Headers: env.authHeader(t, donor),
	})
	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestListDonors_NewestFirst(t *testing.T) {
	env := setupDonationRouter(t)
	first := env.createMember(t, "donor1", model.RoleUser)
	second := env.createMember(t, "donor2", model.RoleUser)
	campaign := env.createDonation(t, nil)

	for i, donor := range []*model.Member{first, second} {
		recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
			Method: http.MethodPost,
			URL:    "/api/donations/payments/confirm",
			Body: donation.ConfirmPaymentRequest{
				DonationID: campaign.ID,
				PaymentKey: fmt.Sprintf("pay-key-donor-%d", i),
				OrderID:    fmt.Sprintf("order-donor-%d", i),
				Amount:     int64((i + 1) * 5_000),
			},
			Headers: env.authHeader(t, donor),
		})
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	}

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/api/donations/%d/donors", campaign.ID),
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var page pagination.PageResponse[*donation.DonorResponse]
	testutil.ParseResponse(t, recorder, &page)
	assert.Equal(t, int64(2), page.TotalElements)
	require.Len(t, page.Content, 2)

	// 최신 후원이 먼저
	assert.Equal(t, second.ID, page.Content[0].MemberID)
	assert.Equal(t, int64(10_000), page.Content[0].Amount)
	require.NotNil(t, page.Content[0].Nickname)
	assert.Equal(t, "donor2", *page.Content[0].Nickname)
}

func TestListDonors_CampaignNotFound(t *testing.T) {
	env := setupDonationRouter(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/donations/99999/donors",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetDonation_NotFound(t *testing.T) {
	env := setupDonationRouter(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/donations/99999",
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "DONATION-001", errorResponse.Code)
}
