package model

import (
	"gorm.io/gorm"
)

type FeedType string

const (
	FeedTypeGeneral              FeedType = "GENERAL"
	FeedTypeTogetherVerification FeedType = "TOGETHER_VERIFICATION"
)

type FeedVisibility string

const (
	VisibilityPublic    FeedVisibility = "PUBLIC"
	VisibilityFollowers FeedVisibility = "FOLLOWERS"
	VisibilityPrivate   FeedVisibility = "PRIVATE"
)

// Feed 피드 (최대 2000자, 이미지 10개, 태그 30개)
// 카운트 컬럼은 서비스 계층에서 원자적 UPDATE로만 증감한다.
type Feed struct {
	BaseEntity

	MemberID   int64          `gorm:"column:member_id;not null;index"`
	FeedType   FeedType       `gorm:"column:feed_type;type:VARCHAR2(30);not null"`
	Content    string         `gorm:"column:content;type:VARCHAR2(2000)"`
	Visibility FeedVisibility `gorm:"column:visibility;type:VARCHAR2(20);not null"`
	TogetherID *int64         `gorm:"column:together_id;index"` // 함께하기 인증 피드인 경우

	ReactionCount int `gorm:"column:reaction_count;not null;default:0"`
	CommentCount  int `gorm:"column:comment_count;not null;default:0"`
	BookmarkCount int `gorm:"column:bookmark_count;not null;default:0"`

	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Member *Member     `gorm:"foreignKey:MemberID"`
	Images []FeedImage `gorm:"foreignKey:FeedID"`
	Tags   []FeedTag   `gorm:"foreignKey:FeedID"`
}

func (*Feed) TableName() string {
	return "feed"
}

func (f *Feed) IsTogetherVerification() bool {
	return f.FeedType == FeedTypeTogetherVerification
}

// TagNames 태그 문자열 목록 (position 순서)
func (f *Feed) TagNames() []string {
	names := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		names = append(names, t.TagName)
	}
	return names
}
