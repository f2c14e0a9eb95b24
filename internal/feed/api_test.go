package feed_test

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/team-moa/moa-api-server/internal/feed"
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

type feedTestEnv struct {
	router       *gin.Engine
	db           *gorm.DB
	tokenManager token.Manager
}

func setupFeedRouter(t *testing.T) *feedTestEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	tokenManager := token.NewJWTManager(cfg)

	feedRepo := feed.NewFeedRepository()
	feedService := feed.NewFeedService(db, feedRepo)
	feedHandler := feed.NewFeedHandler(feedService)

	jwt := middleware.JWT(cfg)
	optionalJWT := middleware.OptionalJWT(cfg)

	router := testutil.SetupTestRouter()
	router.GET("/api/feeds", optionalJWT, feedHandler.Scroll)
	router.GET("/api/feeds/search", optionalJWT, feedHandler.Search)
	router.GET("/api/feeds/ranking", feedHandler.Ranking)
	router.GET("/api/feeds/:feedId", optionalJWT, feedHandler.Get)
	router.POST("/api/feeds", jwt, feedHandler.Create)
	router.PUT("/api/feeds/:feedId", jwt, feedHandler.Update)
	router.DELETE("/api/feeds/:feedId", jwt, feedHandler.Delete)
	router.POST("/api/feeds/:feedId/reactions", jwt, feedHandler.ToggleReaction)
	router.POST("/api/feeds/:feedId/bookmarks", jwt, feedHandler.ToggleBookmark)

	return &feedTestEnv{
		router:       router,
		db:           db,
		tokenManager: tokenManager,
	}
}

var memberCodeSeq int64

func (e *feedTestEnv) createMember(t *testing.T, nickname string) *model.Member {
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

func (e *feedTestEnv) authHeader(t *testing.T, memberID int64) map[string]string {
	t.Helper()

	accessToken, err := e.tokenManager.GenerateAccessToken(memberID, string(model.RoleUser))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + accessToken}
}

func (e *feedTestEnv) createFeed(t *testing.T, memberID int64, body feed.CreateFeedRequest) *feed.FeedResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, e.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/feeds",
		Body:    body,
		Headers: e.authHeader(t, memberID),
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response feed.FeedResponse
	testutil.ParseResponse(t, recorder, &response)
	return &response
}

func TestCreateFeed_NormalizesTags(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	response := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "오늘의 기록",
		Visibility: string(model.VisibilityPublic),
		Tags:       []string{" #여행 ", "#여행", "카페☕투어"},
		Images: []feed.ImageRequest{
			{ImageURL: "https://cdn.example.com/a.jpg", Width: 800, Height: 600},
		},
	})

	assert.Equal(t, []string{"여행", "카페투어"}, response.Tags)
	require.Len(t, response.Images, 1)
	assert.Equal(t, 0, response.Images[0].DisplayOrder)
	assert.Equal(t, 0, response.ReactionCount)
}

func TestCreateFeed_TooManyImages(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	images := make([]feed.ImageRequest, 0, 11)
	for i := 0; i < 11; i++ {
		images = append(images, feed.ImageRequest{
			ImageURL: fmt.Sprintf("https://cdn.example.com/%d.jpg", i),
			Width:    100,
			Height:   100,
		})
	}

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/feeds",
		Body: feed.CreateFeedRequest{
			FeedType:   string(model.FeedTypeGeneral),
			Content:    "이미지 한도 테스트",
			Visibility: string(model.VisibilityPublic),
			Images:     images,
		},
		Headers: env.authHeader(t, author.ID),
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "FEED-003", errorResponse.Code)
}

func TestCreateFeed_VerificationRequiresTogether(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/feeds",
		Body: feed.CreateFeedRequest{
			FeedType:   string(model.FeedTypeTogetherVerification),
			Content:    "인증합니다",
			Visibility: string(model.VisibilityPublic),
		},
		Headers: env.authHeader(t, author.ID),
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "FEED-005", errorResponse.Code)
}

func TestGetFeed_PrivateOnlyForAuthor(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	other := env.createMember(t, "stranger")

	created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "비공개 메모",
		Visibility: string(model.VisibilityPrivate),
	})
	url := fmt.Sprintf("/api/feeds/%d", created.ID)

	// 작성자는 조회 가능
	owner := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: url, Headers: env.authHeader(t, author.ID),
	})
	assert.Equal(t, http.StatusOK, owner.Code)

	// 다른 회원은 403
	stranger := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: url, Headers: env.authHeader(t, other.ID),
	})
	assert.Equal(t, http.StatusForbidden, stranger.Code)

	// 비로그인도 403
	anonymous := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: url,
	})
	assert.Equal(t, http.StatusForbidden, anonymous.Code)
}

func TestDeleteFeed_ThenNotFound(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "본문",
		Visibility: string(model.VisibilityPublic),
	})
	url := fmt.Sprintf("/api/feeds/%d", created.ID)

	deleted := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodDelete, URL: url, Headers: env.authHeader(t, author.ID),
	})
	require.Equal(t, http.StatusNoContent, deleted.Code)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: url,
	})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteFeed_OnlyAuthor(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	other := env.createMember(t, "stranger")

	created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "본문",
		Visibility: string(model.VisibilityPublic),
	})

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodDelete,
		URL:     fmt.Sprintf("/api/feeds/%d", created.ID),
		Headers: env.authHeader(t, other.ID),
	})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestToggleReaction_SetAndUnset(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	viewer := env.createMember(t, "viewer")

	created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "본문",
		Visibility: string(model.VisibilityPublic),
	})
	url := fmt.Sprintf("/api/feeds/%d/reactions", created.ID)

	// 첫 토글: 설정
	first := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, first.Code)

	var firstResponse feed.ToggleResponse
	testutil.ParseResponse(t, first, &firstResponse)
	assert.True(t, firstResponse.Active)
	assert.Equal(t, 1, firstResponse.Count)

	// 두 번째 토글: 해제, 카운터는 0으로 복귀
	second := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost, URL: url, Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, second.Code)

	var secondResponse feed.ToggleResponse
	testutil.ParseResponse(t, second, &secondResponse)
	assert.False(t, secondResponse.Active)
	assert.Equal(t, 0, secondResponse.Count)
}

func TestToggleBookmark_IndependentOfReaction(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	viewer := env.createMember(t, "viewer")

	created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "본문",
		Visibility: string(model.VisibilityPublic),
	})

	reaction := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("/api/feeds/%d/reactions", created.ID),
		Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, reaction.Code)

	bookmark := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("/api/feeds/%d/bookmarks", created.ID),
		Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, bookmark.Code)

	var bookmarkResponse feed.ToggleResponse
	testutil.ParseResponse(t, bookmark, &bookmarkResponse)
	assert.True(t, bookmarkResponse.Active)
	assert.Equal(t, 1, bookmarkResponse.Count)

	// 조회 시 뷰어 플래그 모두 설정
	detail := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     fmt.Sprintf("/api/feeds/%d", created.ID),
		Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, detail.Code)

	var detailResponse feed.FeedResponse
	testutil.ParseResponse(t, detail, &detailResponse)
	assert.True(t, detailResponse.Reacted)
	assert.True(t, detailResponse.Bookmarked)
	assert.Equal(t, 1, detailResponse.ReactionCount)
	assert.Equal(t, 1, detailResponse.BookmarkCount)
}

func TestScroll_CursorPagination(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	for i := 0; i < 25; i++ {
		env.createFeed(t, author.ID, feed.CreateFeedRequest{
			FeedType:   string(model.FeedTypeGeneral),
			Content:    fmt.Sprintf("피드 %d", i),
			Visibility: string(model.VisibilityPublic),
		})
	}

	// 첫 페이지: 20개, hasNext true
	first := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds?size=20",
	})
	require.Equal(t, http.StatusOK, first.Code)

	var firstPage pagination.ScrollResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, first, &firstPage)
	assert.Len(t, firstPage.Content, 20)
	assert.True(t, firstPage.HasNext)
	require.NotNil(t, firstPage.NextCursor)

	// 최신순 정렬 확인
	assert.Greater(t, firstPage.Content[0].ID, firstPage.Content[19].ID)

	// 다음 페이지: 나머지 5개, hasNext false
	second := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/api/feeds?size=20&lastFeedId=%d", *firstPage.NextCursor),
	})
	require.Equal(t, http.StatusOK, second.Code)

	var secondPage pagination.ScrollResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, second, &secondPage)
	assert.Len(t, secondPage.Content, 5)
	assert.False(t, secondPage.HasNext)
}

func TestScroll_SizeOutOfRangeFallsBack(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "본문",
		Visibility: string(model.VisibilityPublic),
	})

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds?size=999",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var page pagination.ScrollResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, recorder, &page)
	assert.Equal(t, pagination.DefaultScrollSize, page.RequestedSize)
}

func TestScroll_ExcludesPrivateFeeds(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "공개",
		Visibility: string(model.VisibilityPublic),
	})
	env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "비공개",
		Visibility: string(model.VisibilityPrivate),
	})

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var page pagination.ScrollResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, recorder, &page)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "공개", page.Content[0].Content)
}

func TestSearch_FiltersByTagAndKeyword(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "제주 여행 기록",
		Visibility: string(model.VisibilityPublic),
		Tags:       []string{"여행"},
	})
	env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "동네 카페",
		Visibility: string(model.VisibilityPublic),
		Tags:       []string{"카페"},
	})

	// 태그 필터
	byTag := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds/search?tags=여행",
	})
	require.Equal(t, http.StatusOK, byTag.Code)

	var tagPage pagination.ScrollResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, byTag, &tagPage)
	require.Len(t, tagPage.Content, 1)
	assert.Contains(t, tagPage.Content[0].Content, "제주")

	// 키워드 부분 일치
	byKeyword := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds/search?keyword=카페",
	})
	require.Equal(t, http.StatusOK, byKeyword.Code)

	var keywordPage pagination.ScrollResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, byKeyword, &keywordPage)
	require.Len(t, keywordPage.Content, 1)
	assert.Contains(t, keywordPage.Content[0].Content, "카페")
}

func TestSearch_InvalidFeedType(t *testing.T) {
	env := setupFeedRouter(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds/search?feedType=UNKNOWN",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRanking_PopularFirst(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	viewer := env.createMember(t, "viewer")

	plain := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "무반응",
		Visibility: string(model.VisibilityPublic),
	})
	popular := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "인기글",
		Visibility: string(model.VisibilityPublic),
	})

	reaction := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("/api/feeds/%d/reactions", popular.ID),
		Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, reaction.Code)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds/ranking?sortBy=popular",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Content []*feed.FeedResponse `json:"content"`
	}
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Content, 2)
	assert.Equal(t, popular.ID, response.Content[0].ID)
	assert.Equal(t, plain.ID, response.Content[1].ID)
}

func TestCreateFeed_EmptyContentRejected(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/feeds",
		Body: feed.CreateFeedRequest{
			FeedType:   string(model.FeedTypeGeneral),
			Content:    "",
			Visibility: string(model.VisibilityPublic),
		},
		Headers: env.authHeader(t, author.ID),
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSearch_OffsetPagingPopularSort(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	feedIDs := make([]int64, 0, 3)
	for i := 0; i < 3; i++ {
		created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
			FeedType:   string(model.FeedTypeGeneral),
			Content:    fmt.Sprintf("피드 %d", i),
			Visibility: string(model.VisibilityPublic),
		})
		feedIDs = append(feedIDs, created.ID)
	}

	// 첫 번째 피드에 리액션 2개, 두 번째에 1개
	for i, reactions := range []int{2, 1} {
		for j := 0; j < reactions; j++ {
			viewer := env.createMember(t, fmt.Sprintf("viewer%d_%d", i, j))
			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method:  http.MethodPost,
				URL:     fmt.Sprintf("/api/feeds/%d/reactions", feedIDs[i]),
				Headers: env.authHeader(t, viewer.ID),
			})
			require.Equal(t, http.StatusOK, recorder.Code)
		}
	}

	// page 파라미터가 있으면 오프셋 방식으로 응답한다
	first := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/feeds/search?sortBy=popular&page=0&size=2",
	})
	require.Equal(t, http.StatusOK, first.Code)

	var firstPage pagination.PageResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, first, &firstPage)
	assert.Equal(t, int64(3), firstPage.TotalElements)
	assert.Equal(t, 2, firstPage.TotalPages)
	require.Len(t, firstPage.Content, 2)
	assert.Equal(t, feedIDs[0], firstPage.Content[0].ID)
	assert.Equal(t, feedIDs[1], firstPage.Content[1].ID)

	// 인기순 두 번째 페이지
	second := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/feeds/search?sortBy=popular&page=1&size=2",
	})
	require.Equal(t, http.StatusOK, second.Code)

	var secondPage pagination.PageResponse[*feed.FeedResponse]
	testutil.ParseResponse(t, second, &secondPage)
	require.Len(t, secondPage.Content, 1)
	assert.Equal(t, feedIDs[2], secondPage.Content[0].ID)
}

func TestRanking_ExcludesFeedsOutsideWindow(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")
	viewer := env.createMember(t, "viewer")

	old := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "옛날 인기글",
		Visibility: string(model.VisibilityPublic),
	})
	fresh := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "요즘 글",
		Visibility: string(model.VisibilityPublic),
	})

	// 옛날 글은 리액션이 훨씬 많지만 집계 기간 밖으로 밀어낸다
	require.NoError(t, env.db.Model(&model.Feed{}).
		Where("id = ?", old.ID).
		UpdateColumn("reaction_count", 100).Error)
	require.NoError(t, env.db.Model(&model.Feed{}).
		Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Now().Add(-8*24*time.Hour)).Error)

	reaction := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     fmt.Sprintf("/api/feeds/%d/reactions", fresh.ID),
		Headers: env.authHeader(t, viewer.ID),
	})
	require.Equal(t, http.StatusOK, reaction.Code)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds/ranking?sortBy=popular",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Content []*feed.FeedResponse `json:"content"`
	}
	testutil.ParseResponse(t, recorder, &response)
	require.Len(t, response.Content, 1)
	assert.Equal(t, fresh.ID, response.Content[0].ID)
}

func TestRanking_SizeCapped(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	for i := 0; i < 25; i++ {
		env.createFeed(t, author.ID, feed.CreateFeedRequest{
			FeedType:   string(model.FeedTypeGeneral),
			Content:    fmt.Sprintf("피드 %d", i),
			Visibility: string(model.VisibilityPublic),
		})
	}

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/feeds/ranking?sortBy=popular&size=50",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Content []*feed.FeedResponse `json:"content"`
	}
	testutil.ParseResponse(t, recorder, &response)
	assert.Len(t, response.Content, 20)
}

func TestUpdateFeed_ReplacesTags(t *testing.T) {
	env := setupFeedRouter(t)
	author := env.createMember(t, "author")

	created := env.createFeed(t, author.ID, feed.CreateFeedRequest{
		FeedType:   string(model.FeedTypeGeneral),
		Content:    "처음",
		Visibility: string(model.VisibilityPublic),
		Tags:       []string{"여행"},
	})

	content := "수정됨"
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    fmt.Sprintf("/api/feeds/%d", created.ID),
		Body: feed.UpdateFeedRequest{
			Content: &content,
			Tags:    []string{"맛집", "카페"},
		},
		Headers: env.authHeader(t, author.ID),
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var response feed.FeedResponse
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, "수정됨", response.Content)
	assert.Equal(t, []string{"맛집", "카페"}, response.Tags)
}
