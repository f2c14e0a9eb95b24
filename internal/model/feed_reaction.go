package model

// FeedReaction 피드 리액션(좋아요)
// (member_id, feed_id) unique 제약이 동시 토글의 직렬화 지점이다.
type FeedReaction struct {
	BaseEntity

	MemberID int64 `gorm:"column:member_id;not null;uniqueIndex:uk_feed_reaction_member_feed;index:idx_feed_reaction_member_id"`
	FeedID   int64 `gorm:"column:feed_id;not null;uniqueIndex:uk_feed_reaction_member_feed;index:idx_feed_reaction_feed_id"`
}

func (*FeedReaction) TableName() string {
	return "feed_reaction"
}
