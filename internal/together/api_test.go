package together_test

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/team-moa/moa-api-server/internal/model"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/middleware"
	"github.com/team-moa/moa-api-server/internal/shared/testutil"
	"github.com/team-moa/moa-api-server/internal/shared/token"
	"github.com/team-moa/moa-api-server/internal/together"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type togetherTestEnv struct {
	router       *gin.Engine
	db           *gorm.DB
	tokenManager token.Manager
}

func setupTogetherRouter(t *testing.T) *togetherTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	tokenManager := token.NewJWTManager(cfg)

	togetherRepo := together.NewTogetherRepository()
	togetherService := together.NewTogetherService(db, togetherRepo)
	togetherHandler := together.NewTogetherHandler(togetherService)

	jwt := middleware.JWT(cfg)

	router := testutil.SetupTestRouter()
	router.GET("/api/togethers", togetherHandler.List)
	router.GET("/api/togethers/:togetherId", togetherHandler.Get)
	router.POST("/api/togethers", jwt, togetherHandler.Create)
	router.PUT("/api/togethers/:togetherId", jwt, togetherHandler.Update)
	router.DELETE("/api/togethers/:togetherId", jwt, togetherHandler.Delete)
	router.POST("/api/togethers/:togetherId/participants", jwt, togetherHandler.Join)
	router.DELETE("/api/togethers/:togetherId/participants", jwt, togetherHandler.Leave)

	return &togetherTestEnv{
		router:       router,
		db:           db,
		tokenManager: tokenManager,
	}
}

var memberCodeSeq int64

func (e *togetherTestEnv) createMember(t *testing.T, nickname string) *model.Member {
	t.Helper()

	email := nickname + "@example.com"
	newMember := &model.Member{
		Name:       nickname,
		Nickname:   &nickname,
		Email:      &email,
		MemberCode: fmt.Sprintf("%08d", atomic.AddInt64(&memberCodeSeq, 1)),
		Role:       model.RoleUser,
	}
	require.NoError(t, e.db.Create(newMember).Error)
	return newMember
}

func (e *togetherTestEnv) authHeader(t *testing.T, memberID int64) map[string]string {
	t.Helper()

	accessToken, err := e.tokenManager.GenerateAccessToken(memberID, string(model.RoleUser))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + accessToken}
}

func (e *togetherTestEnv) createTogether(t *testing.T, organizerID int64, capacity int) *together.TogetherResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, e.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/togethers",
		Body: together.CreateTogetherRequest{
			Title:    "아침 러닝 모임",
			Category: "운동",
			Mode:     "OFFLINE",
			Capacity: capacity,
		},
		Headers: e.authHeader(t, organizerID),
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response together.TogetherResponse
	testutil.ParseResponse(t, recorder, &response)
	return &response
}

func TestCreateTogether_OrganizerAutoJoins(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")

	created := env.createTogether(t, organizer.ID, 5)

	assert.Equal(t, organizer.ID, created.OrganizerID)
	assert.Equal(t, string(model.TogetherStatusRecruiting), created.Status)
	assert.Equal(t, int64(1), created.ParticipantCount)
}

func TestJoinTogether_Duplicate(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")
	participant := env.createMember(t, "runner")

	created := env.createTogether(t, organizer.ID, 5)
	url := fmt.Sprintf("/api/togethers/%d/participants", created.ID)

	first := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, participant.ID),
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, participant.ID),
	})
	assert.Equal(t, http.StatusConflict, second.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, second, &errorResponse)
	assert.Equal(t, "TOGETHER-004", errorResponse.Code)
}

func TestJoinTogether_CapacityFull(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")

	// 정원 2: 주최자 + 1명이면 만석
	created := env.createTogether(t, organizer.ID, 2)
	url := fmt.Sprintf("/api/togethers/%d/participants", created.ID)

	first := env.createMember(t, "runner1")
	joined := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, first.ID),
	})
	require.Equal(t, http.StatusCreated, joined.Code)

	second := env.createMember(t, "runner2")
	full := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, second.ID),
	})
	assert.Equal(t, http.StatusConflict, full.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, full, &errorResponse)
	assert.Equal(t, "TOGETHER-003", errorResponse.Code)
}

func TestJoinTogether_NotRecruiting(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")
	participant := env.createMember(t, "runner")

	created := env.createTogether(t, organizer.ID, 5)

	// 모집 종료
	status := string(model.TogetherStatusClosed)
	closed := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPut,
		URL:     fmt.Sprintf("/api/togethers/%d", created.ID),
		Body:    together.UpdateTogetherRequest{Status: &status},
		Headers: env.authHeader(t, organizer.ID),
	})
	require.Equal(t, http.StatusOK, closed.Code)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("/api/togethers/%d/participants", created.ID),
		Headers: env.authHeader(t, participant.ID),
	})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "TOGETHER-006", errorResponse.Code)
}

func TestLeaveTogether_ThenRejoin(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")
	participant := env.createMember(t, "runner")

	created := env.createTogether(t, organizer.ID, 5)
	url := fmt.Sprintf("/api/togethers/%d/participants", created.ID)

	joined := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, participant.ID),
	})
	require.Equal(t, http.StatusCreated, joined.Code)

	left := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete, URL: url, Headers: env.authHeader(t, participant.ID),
	})
	require.Equal(t, http.StatusNoContent, left.Code)

	// 탈퇴 후 재참여 가능
	rejoined := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, participant.ID),
	})
	assert.Equal(t, http.StatusCreated, rejoined.Code)
}

func TestLeaveTogether_NotJoined(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")
	outsider := env.createMember(t, "outsider")

	created := env.createTogether(t, organizer.ID, 5)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodDelete,
		URL:     fmt.Sprintf("/api/togethers/%d/participants", created.ID),
		Headers: env.authHeader(t, outsider.ID),
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "TOGETHER-005", errorResponse.Code)
}

func TestUpdateTogether_OnlyOrganizer(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")
	other := env.createMember(t, "stranger")

	created := env.createTogether(t, organizer.ID, 5)

	title := "바뀐 제목"
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPut,
		URL:     fmt.Sprintf("/api/togethers/%d", created.ID),
		Body:    together.UpdateTogetherRequest{Title: &title},
		Headers: env.authHeader(t, other.ID),
	})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDeleteTogether_ThenNotFound(t *testing.T) {
	env := setupTogetherRouter(t)
	organizer := env.createMember(t, "organizer")

	created := env.createTogether(t, organizer.ID, 5)
	url := fmt.Sprintf("/api/togethers/%d", created.ID)

	deleted := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete, URL: url, Headers: env.authHeader(t, organizer.ID),
	})
	require.Equal(t, http.StatusNoContent, deleted.Code)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: url,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "TOGETHER-001", errorResponse.Code)
}
