package model

import (
	"gorm.io/gorm"
)

type CommentType string

const (
	CommentTypeFeed     CommentType = "FEED"
	CommentTypeTogether CommentType = "TOGETHER"
	CommentTypeDonation CommentType = "DONATION" // 생성 시점에 거부됨
)

// Comment 댓글 (최대 1000자, 2단 스레딩)
// comment_type에 따라 feed_id / together_id / donation_id 중 정확히 하나만 설정된다.
// parent_id가 null이면 최상위 댓글, 아니면 최상위 댓글에 대한 답글.
type Comment struct {
	BaseEntity

	MemberID    int64       `gorm:"column:member_id;not null;index"`
	CommentType CommentType `gorm:"column:comment_type;type:VARCHAR2(20);not null"`

	FeedID     *int64 `gorm:"column:feed_id;index"`
	TogetherID *int64 `gorm:"column:together_id;index"`
	DonationID *int64 `gorm:"column:donation_id;index"`

	Content  string `gorm:"column:content;type:VARCHAR2(1000);not null"`
	ParentID *int64 `gorm:"column:parent_id;index"`

	ReactionCount int `gorm:"column:reaction_count;not null;default:0"`

	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Member *Member `gorm:"foreignKey:MemberID"`
}

func (*Comment) TableName() string {
	return "comment"
}

func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

func (c *Comment) IsFeedComment() bool {
	return c.CommentType == CommentTypeFeed
}

// TargetID 댓글이 속한 도메인의 ID
func (c *Comment) TargetID() int64 {
	switch c.CommentType {
	case CommentTypeFeed:
		if c.FeedID != nil {
			return *c.FeedID
		}
	case CommentTypeTogether:
		if c.TogetherID != nil {
			return *c.TogetherID
		}
	case CommentTypeDonation:
		if c.DonationID != nil {
			return *c.DonationID
		}
	}
	return 0
}
