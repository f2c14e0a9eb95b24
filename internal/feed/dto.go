package feed

import (
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
)

const maxImageCount = 10

type ImageRequest struct {
	ImageURL         string  `json:"imageUrl" binding:"required,url,max=500"`
	Width            int     `json:"width" binding:"required,min=1"`
	Height           int     `json:"height" binding:"required,min=1"`
	FileSize         *int64  `json:"fileSize" binding:"omitempty,min=1"`
	OriginalFileName *string `json:"originalFileName" binding:"omitempty,max=100"`
}

type CreateFeedRequest struct {
	FeedType   string         `json:"feedType" binding:"required,oneof=GENERAL TOGETHER_VERIFICATION"`
	Content    string         `json:"content" binding:"required,max=2000"`
	Visibility string         `json:"visibility" binding:"required,oneof=PUBLIC FOLLOWERS PRIVATE"`
	TogetherID *int64         `json:"togetherId" binding:"omitempty,min=1"`
	Images     []ImageRequest `json:"images" binding:"omitempty,dive"`
	Tags       []string       `json:"tags"`
}

type UpdateFeedRequest struct {
	Content    *string        `json:"content" binding:"omitempty,min=1,max=2000"`
	Visibility *string        `json:"visibility" binding:"omitempty,oneof=PUBLIC FOLLOWERS PRIVATE"`
	Images     []ImageRequest `json:"images" binding:"omitempty,dive"`
	Tags       []string       `json:"tags"`
}

type AuthorResponse struct {
	ID              int64   `json:"id"`
	Nickname        *string `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

type ImageResponse struct {
	ImageURL     string `json:"imageUrl"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DisplayOrder int    `json:"displayOrder"`
}

type FeedResponse struct {
	ID            int64           `json:"id"`
	FeedType      string          `json:"feedType"`
	Content       string          `json:"content"`
	Visibility    string          `json:"visibility"`
	TogetherID    *int64          `json:"togetherId,omitempty"`
	Author        *AuthorResponse `json:"author,omitempty"`
	Images        []ImageResponse `json:"images"`
	Tags          []string        `json:"tags"`
	ReactionCount int             `json:"reactionCount"`
	CommentCount  int             `json:"commentCount"`
	BookmarkCount int             `json:"bookmarkCount"`
	Reacted       bool            `json:"reacted"`
	Bookmarked    bool            `json:"bookmarked"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func NewFeedResponse(f *model.Feed) *FeedResponse {
	resp := &FeedResponse{
		ID:            f.ID,
		FeedType:      string(f.FeedType),
		Content:       f.Content,
		Visibility:    string(f.Visibility),
		TogetherID:    f.TogetherID,
		Images:        make([]ImageResponse, 0, len(f.Images)),
		Tags:          f.TagNames(),
		ReactionCount: f.ReactionCount,
		CommentCount:  f.CommentCount,
		BookmarkCount: f.BookmarkCount,
		CreatedAt:     f.CreatedAt,
	}
	for _, img := range f.Images {
		resp.Images = append(resp.Images, ImageResponse{
			ImageURL:     img.ImageURL,
			Width:        img.Width,
			Height:       img.Height,
			DisplayOrder: img.DisplayOrder,
		})
	}
	if f.Member != nil {
		resp.Author = &AuthorResponse{
			ID:              f.Member.ID,
			Nickname:        f.Member.Nickname,
			ProfileImageURL: f.Member.ProfileImageURL,
		}
	}
	return resp
}

// ToggleResponse 토글 결과 (토글 후 상태와 최신 카운트)
type ToggleResponse struct {
	FeedID int64 `json:"feedId"`
	Active bool  `json:"active"`
	Count  int   `json:"count"`
}

// SearchCondition 동적 검색 조건. 설정된 필터만 AND로 결합된다.
type SearchCondition struct {
	FeedType   *model.FeedType
	MemberID   *int64
	Tags       []string // 태그 중 하나라도 달린 피드 (OR)
	Keyword    string   // content 대소문자 무시 부분 일치
	Visibility *model.FeedVisibility
	TogetherID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string // latest | popular | comments | bookmarks
}

const (
	SortLatest    = "latest"
	SortPopular   = "popular"
	SortComments  = "comments"
	SortBookmarks = "bookmarks"
)

func ValidSortBy(s string) bool {
	switch s {
	case SortLatest, SortPopular, SortComments, SortBookmarks:
		return true
	}
	return false
}
