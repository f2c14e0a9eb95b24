package comment

import (
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
)

type CreateCommentRequest struct {
	CommentType string `json:"commentType" binding:"required,oneof=FEED TOGETHER DONATION"`
	TargetID    int64  `json:"targetId" binding:"required,min=1"`
	Content     string `json:"content" binding:"required,max=1000"`
	ParentID    *int64 `json:"parentId" binding:"omitempty,min=1"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type AuthorResponse struct {
	ID              int64   `json:"id"`
	Nickname        *string `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type CommentResponse struct {
	ID            int64             `json:"id"`
	CommentType   string            `json:"commentType"`
	TargetID      int64             `json:"targetId"`
	Content       string            `json:"content"`
	ParentID      *int64            `json:"parentId,omitempty"`
	Author        *AuthorResponse   `json:"author,omitempty"`
	ReactionCount int               `json:"reactionCount"`
	Reacted       bool              `json:"reacted"`
	Replies       []CommentResponse `json:"replies,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

func NewCommentResponse(c *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:            c.ID,
		CommentType:   string(c.CommentType),
		TargetID:      c.TargetID(),
		Content:       c.Content,
		ParentID:      c.ParentID,
		ReactionCount: c.ReactionCount,
		CreatedAt:     c.CreatedAt,
	}
	if c.Member != nil {
		resp.Author = &AuthorResponse{
			ID:              c.Member.ID,
			Nickname:        c.Member.Nickname,
			ProfileImageURL: c.Member.ProfileImageURL,
		}
	}
	return resp
}

type ToggleReactionResponse struct {
	CommentID int64 `json:"commentId"`
	Active    bool  `json:"active"`
	Count     int   `json:"count"`
}
