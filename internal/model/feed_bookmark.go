package model

// FeedBookmark 피드 북마크(스크랩)
type FeedBookmark struct {
	BaseEntity

	MemberID int64 `gorm:"column:member_id;not null;uniqueIndex:uk_feed_bookmark_member_feed;index:idx_feed_bookmark_member_id"`
	FeedID   int64 `gorm:"column:feed_id;not null;uniqueIndex:uk_feed_bookmark_member_feed;index:idx_feed_bookmark_feed_id"`
}

func (*FeedBookmark) TableName() string {
	return "feed_bookmark"
}
