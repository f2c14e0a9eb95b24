package model

// FeedImage 피드 이미지 (URL + 메타데이터)
// display_order는 0부터 빈틈없이 매겨지며 부모 피드와 생명주기를 같이한다.
type FeedImage struct {
	BaseEntity

	FeedID           int64   `gorm:"column:feed_id;not null;index:idx_feed_image_feed_id"`
	ImageURL         string  `gorm:"column:image_url;type:VARCHAR2(500);not null"`
	Width            int     `gorm:"column:width;not null"`
	Height           int     `gorm:"column:height;not null"`
	DisplayOrder     int     `gorm:"column:display_order;not null"`
	FileSize         *int64  `gorm:"column:file_size"`
	OriginalFileName *string `gorm:"column:original_file_name;type:VARCHAR2(100)"`
}

func (*FeedImage) TableName() string {
	return "feed_image"
}
