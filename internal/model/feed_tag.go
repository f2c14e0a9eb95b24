package model

// FeedTag 피드 태그 (정규화된 태그명, 피드 내 중복 없음)
type FeedTag struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FeedID   int64  `gorm:"column:feed_id;not null;uniqueIndex:uk_feed_tag"`
	TagName  string `gorm:"column:tag_name;type:VARCHAR2(50);not null;uniqueIndex:uk_feed_tag;index:idx_feed_tag_name"`
	Position int    `gorm:"column:position;not null"` // 입력 순서 유지
}

func (*FeedTag) TableName() string {
	return "feed_tags"
}
