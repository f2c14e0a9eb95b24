package comment

import (
	"net/http"
	"strconv"

	sharedContext "github.com/team-moa/moa-api-server/internal/shared/context"
	sharedError "github.com/team-moa/moa-api-server/internal/shared/error"
	"github.com/team-moa/moa-api-server/internal/shared/handler"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *CommentService
}

func NewCommentHandler(commentService *CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// Create POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}

	var request CreateCommentRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.commentService.CreateComment(c.Request.Context(), memberID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get GET /api/comments/:commentId
func (h *CommentHandler) Get(c *gin.Context) {
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	viewerID := sharedContext.OptionalMemberID(c)
	response, err := h.commentService.GetComment(c.Request.Context(), commentID, viewerID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Replies GET /api/comments/:commentId/replies
func (h *CommentHandler) Replies(c *gin.Context) {
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	response, err := h.commentService.Replies(c.Request.Context(), commentID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// PopularByFeed GET /api/feeds/:feedId/comments/popular?size=
func (h *CommentHandler) PopularByFeed(c *gin.Context) {
	feedID, ok := parseTargetFeedID(c)
	if !ok {
		return
	}

	size := pagination.ParseScrollSize(c.Query("size"))
	response, err := h.commentService.PopularFeedComments(c.Request.Context(), feedID, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// RecentByFeed GET /api/feeds/:feedId/comments/recent
func (h *CommentHandler) RecentByFeed(c *gin.Context) {
	feedID, ok := parseTargetFeedID(c)
	if !ok {
		return
	}

	response, err := h.commentService.RecentFeedComments(c.Request.Context(), feedID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": response})
}

// ListByFeed GET /api/feeds/:feedId/comments
func (h *CommentHandler) ListByFeed(c *gin.Context) {
	feedID, ok := parseTargetFeedID(c)
	if !ok {
		return
	}

	cursor := pagination.ParseCursor(c.Query("lastCommentId"))
	size := pagination.ParseScrollSize(c.Query("size"))

	response, err := h.commentService.ListFeedComments(c.Request.Context(), feedID, cursor, size)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update PUT /api/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	var request UpdateCommentRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.commentService.UpdateComment(c.Request.Context(), memberID, commentID, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete DELETE /api/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), memberID, commentID); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ToggleReaction POST /api/comments/:commentId/reactions
func (h *CommentHandler) ToggleReaction(c *gin.Context) {
	memberID, ok := sharedContext.RequireMemberID(c)
	if !ok {
		return
	}
	commentID, ok := parseCommentID(c)
	if !ok {
		return
	}

	response, err := h.commentService.ToggleReaction(c.Request.Context(), memberID, commentID)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func parseCommentID(c *gin.Context) (int64, bool) {
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil || commentID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return 0, false
	}
	return commentID, true
}

func parseTargetFeedID(c *gin.Context) (int64, bool) {
	feedID, err := strconv.ParseInt(c.Param("feedId"), 10, 64)
	if err != nil || feedID <= 0 {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return 0, false
	}
	return feedID, true
}
