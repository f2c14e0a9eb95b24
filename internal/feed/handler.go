package feed

import (
	"net/http"
	"strconv"
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService *FeedService
}

func NewFeedHandler(feedService *FeedService) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
	}
}

// Create POST /api/feeds
func (h *FeedHandler) Create(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request CreateFeedRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.feedService.CreateFeed(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get GET /api/feeds/:feedId
func (h *FeedHandler) Get(c *gin.Context) {
	feedID, ok := parseFeedID(c)
	if !ok {
		return
	}

	viewerID := sharedContext.OptionalMemberID(c)
	response, err := h.feedService.GetFeed(c.Request.Context(), feedID, viewerID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update PUT /api/feeds/:feedId
func (h *FeedHandler) Update(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	feedID, ok := parseFeedID(c)
	if !ok {
		return
	}

	var request UpdateFeedRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.feedService.UpdateFeed(c.Request.Context(), memberID, feedID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete DELETE /api/feeds/:feedId
func (h *FeedHandler) Delete(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	feedID, ok := parseFeedID(c)
	if !ok {
		return
	}

	if err := h.feedService.DeleteFeed(c.Request.Context(), memberID, feedID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Scroll GET /api/feeds?lastFeedId=&size=
func (h *FeedHandler) Scroll(c *gin.Context) {
	cursor := pagination.ParseCursor(c.Query("lastFeedId"))
	size := pagination.ParseScrollSize(c.Query("size"))
	viewerID := sharedContext.OptionalMemberID(c)

	response, err := h.feedService.Scroll(c.Request.Context(), cursor, size, viewerID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Search GET /api/feeds/search
// page 파라미터가 있으면 오프셋 방식, 없으면 커서 방식으로 응답한다.
func (h *FeedHandler) Search(c *gin.Context) {
	cond, ok := parseSearchCondition(c)
	if !ok {
		return
	}

	viewerID := sharedContext.OptionalMemberID(c)

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return
		}
		size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

		response, err := h.feedService.SearchPage(c.Request.Context(), cond, page, size, viewerID)
		if err != nil {
			handler.RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, response)
		return
	}

	cursor := pagination.ParseCursor(c.Query("lastFeedId"))
	size := pagination.ParseScrollSize(c.Query("size"))

	response, err := h.feedService.Search(c.Request.Context(), cond, cursor, size, viewerID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Ranking GET /api/feeds/ranking?sortBy=popular&size=
func (h *FeedHandler) Ranking(c *gin.Context) {
	sortBy := c.DefaultQuery("sortBy", SortPopular)
	size := pagination.ParseScrollSize(c.Query("size"))

	response, err := h.feedService.GetRanking(c.Request.Context(), sortBy, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// ToggleReaction POST /api/feeds/:feedId/reactions
func (h *FeedHandler) ToggleReaction(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	feedID, ok := parseFeedID(c)
	if !ok {
		return
	}

	response, err := h.feedService.ToggleReaction(c.Request.Context(), memberID, feedID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ToggleBookmark POST /api/feeds/:feedId/bookmarks
func (h *FeedHandler) ToggleBookmark(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	feedID, ok := parseFeedID(c)
	if !ok {
		return
	}

	response, err := h.feedService.ToggleBookmark(c.Request.Context(), memberID, feedID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func parseFeedID(c *gin.Context) (int64, bool) {
	feedID, err := strconv.ParseInt(c.Param("feedId"), 10, 64)
	if err != nil || feedID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return 0, false
	}
	return feedID, true
}

func parseSearchCondition(c *gin.Context) (*SearchCondition, bool) {
	cond := &SearchCondition{
		Keyword: c.Query("keyword"),
		SortBy:  c.DefaultQuery("sortBy", SortLatest),
	}

	if raw := c.Query("feedType"); raw != "" {
		feedType := model.FeedType(raw)
		if feedType != model.FeedTypeGeneral && feedType != model.FeedTypeTogetherVerification {
			handler.RespondError(c, nil, sharedError.InvalidRequest)
			return nil, false
		}
		cond.FeedType = &feedType
	}

	if raw := c.Query("memberId"); raw != "" {
		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || memberID <= 0 {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return nil, false
		}
		cond.MemberID = &memberID
	}

	if tags := c.QueryArray("tags"); len(tags) > 0 {
		cond.Tags = NormalizeTags(tags)
	}

	if raw := c.Query("visibility"); raw != "" {
		visibility := model.FeedVisibility(raw)
		switch visibility {
		case model.VisibilityPublic, model.VisibilityFollowers, model.VisibilityPrivate:
			cond.Visibility = &visibility
		default:
			handler.RespondError(c, nil, sharedError.InvalidRequest)
			return nil, false
		}
	}

	if raw := c.Query("togetherId"); raw != "" {
		togetherID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || togetherID <= 0 {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return nil, false
		}
		cond.TogetherID = &togetherID
	}

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return nil, false
		}
		cond.StartDate = &start
	}

	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handler.RespondError(c, err, sharedError.InvalidRequest)
			return nil, false
		}
		cond.EndDate = &end
	}

	return cond, true
}
