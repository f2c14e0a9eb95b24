package feed

import (
	"context"
	"strings"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type FeedRepository struct{}

func NewFeedRepository() *FeedRepository {
	return &FeedRepository{}
}

func (r *FeedRepository) Create(ctx context.Context, db *gorm.DB, feed *model.Feed) error {
	return db.WithContext(ctx).Create(feed).Error
}

func (r *FeedRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Feed, error) {
	var feed model.Feed
	err := db.WithContext(ctx).
		Preload("Member").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&feed).Error
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

// FindByIDUnscoped 삭제된 피드 포함 조회 (신고 처리용)
func (r *FeedRepository) FindByIDUnscoped(ctx context.Context, db *gorm.DB, id int64) (*model.Feed, error) {
	var feed model.Feed
	err := db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&feed).Error
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

func (r *FeedRepository) Update(ctx context.Context, db *gorm.DB, feed *model.Feed) error {
	return db.WithContext(ctx).Save(feed).Error
}

func (r *FeedRepository) SoftDelete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&model.Feed{}, id).Error
}

func (r *FeedRepository) ReplaceImages(ctx context.Context, db *gorm.DB, feedID int64, images []model.FeedImage) error {
	if err := db.WithContext(ctx).
		Where("feed_id = ?", feedID).
		Delete(&model.FeedImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&images).Error
}

func (r *FeedRepository) ReplaceTags(ctx context.Context, db *gorm.DB, feedID int64, tags []model.FeedTag) error {
	if err := db.WithContext(ctx).
		Where("feed_id = ?", feedID).
		Delete(&model.FeedTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&tags).Error
}

// Scroll 커서 기반 무한 스크롤. cursor가 nil이면 최신부터, size+1개를 가져온다.
func (r *FeedRepository) Scroll(ctx context.Context, db *gorm.DB, cursor *int64, size int) ([]model.Feed, error) {
	query := db.WithContext(ctx).
		Model(&model.Feed{}).
		Where("visibility = ?", model.VisibilityPublic)

	if cursor != nil {
		query = query.Where("id < ?", *cursor)
	}

	var ids []int64
	if err := query.Order("id DESC").Limit(size + 1).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return r.fetchByIDs(ctx, db, ids)
}

// buildSearchQuery 설정된 필터만 AND로 결합한 기본 쿼리를 만든다.
func (r *FeedRepository) buildSearchQuery(ctx context.Context, db *gorm.DB, cond *SearchCondition) *gorm.DB {
	query := db.WithContext(ctx).Model(&model.Feed{})

	if cond.FeedType != nil {
		query = query.Where("feed_type = ?", *cond.FeedType)
	}
	if cond.MemberID != nil {
		query = query.Where("member_id = ?", *cond.MemberID)
	}
	if len(cond.Tags) > 0 {
		query = query.Where("id IN (?)",
			db.Model(&model.FeedTag{}).
				Select("feed_id").
				Where("tag_name IN ?", cond.Tags),
		)
	}
	if cond.Keyword != "" {
		query = query.Where("LOWER(content) LIKE ?", "%"+strings.ToLower(cond.Keyword)+"%")
	}
	if cond.Visibility != nil {
		query = query.Where("visibility = ?", *cond.Visibility)
	}
	if cond.TogetherID != nil {
		query = query.Where("together_id = ?", *cond.TogetherID)
	}
	if cond.StartDate != nil {
		query = query.Where("created_at >= ?", *cond.StartDate)
	}
	if cond.EndDate != nil {
		query = query.Where("created_at <= ?", *cond.EndDate)
	}
	return query
}

// applySearchOrder 정렬 키 적용. 정렬 키가 같은 행은 id DESC로 안정화.
func applySearchOrder(query *gorm.DB, sortBy string) *gorm.DB {
	switch sortBy {
	case SortPopular:
		query = query.Order("reaction_count DESC")
	case SortComments:
		query = query.Order("comment_count DESC")
	case SortBookmarks:
		query = query.Order("bookmark_count DESC")
	}
	return query.Order("id DESC")
}

// Search 커서 기반 동적 검색. N+1 방지를 위해 id만 먼저 뽑고 연관을 한 번에 로드한다.
func (r *FeedRepository) Search(ctx context.Context, db *gorm.DB, cond *SearchCondition, cursor *int64, size int) ([]model.Feed, error) {
	query := applySearchOrder(r.buildSearchQuery(ctx, db, cond), cond.SortBy)

	if cursor != nil && (cond.SortBy == "" || cond.SortBy == SortLatest) {
		// 커서는 최신순 정렬에서만 의미가 있다
		query = query.Where("id < ?", *cursor)
	}

	var ids []int64
	if err := query.Limit(size + 1).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	return r.fetchByIDs(ctx, db, ids)
}

// SearchPage 오프셋 기반 동적 검색. 인기순/댓글순 정렬에서 페이지를 건너뛸 때 쓴다.
func (r *FeedRepository) SearchPage(ctx context.Context, db *gorm.DB, cond *SearchCondition, page, size int) ([]model.Feed, int64, error) {
	var total int64
	if err := r.buildSearchQuery(ctx, db, cond).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applySearchOrder(r.buildSearchQuery(ctx, db, cond), cond.SortBy)

	var ids []int64
	if err := query.Offset(page * size).Limit(size).Pluck("id", &ids).Error; err != nil {
		return nil, 0, err
	}

	feeds, err := r.fetchByIDs(ctx, db, ids)
	if err != nil {
		return nil, 0, err
	}
	return feeds, total, nil
}

// fetchByIDs id 목록으로 연관 포함 조회 후 원래 순서로 재정렬
func (r *FeedRepository) fetchByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]model.Feed, error) {
	if len(ids) == 0 {
		return []model.Feed{}, nil
	}

	var feeds []model.Feed
	err := db.WithContext(ctx).
		Preload("Member").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id IN ?", ids).
		Find(&feeds).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Feed, len(feeds))
	for _, f := range feeds {
		byID[f.ID] = f
	}

	ordered := make([]model.Feed, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered, nil
}

// --- 리액션 / 북마크 ---

func (r *FeedRepository) FindReaction(ctx context.Context, db *gorm.DB, memberID, feedID int64) (*model.FeedReaction, error) {
	var reaction model.FeedReaction
	err := db.WithContext(ctx).
		Where("member_id = ? AND feed_id = ?", memberID, feedID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *FeedRepository) CreateReaction(ctx context.Context, db *gorm.DB, reaction *model.FeedReaction) error {
	return db.WithContext(ctx).Create(reaction).Error
}

func (r *FeedRepository) DeleteReaction(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&model.FeedReaction{}, id)
	return result.RowsAffected, result.Error
}

func (r *FeedRepository) FindBookmark(ctx context.Context, db *gorm.DB, memberID, feedID int64) (*model.FeedBookmark, error) {
	var bookmark model.FeedBookmark
	err := db.WithContext(ctx).
		Where("member_id = ? AND feed_id = ?", memberID, feedID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *FeedRepository) CreateBookmark(ctx context.Context, db *gorm.DB, bookmark *model.FeedBookmark) error {
	return db.WithContext(ctx).Create(bookmark).Error
}

func (r *FeedRepository) DeleteBookmark(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&model.FeedBookmark{}, id)
	return result.RowsAffected, result.Error
}

func (r *FeedRepository) HasReaction(ctx context.Context, db *gorm.DB, memberID, feedID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.FeedReaction{}).
		Where("member_id = ? AND feed_id = ?", memberID, feedID).
		Count(&count).Error
	return count > 0, err
}

func (r *FeedRepository) HasBookmark(ctx context.Context, db *gorm.DB, memberID, feedID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.FeedBookmark{}).
		Where("member_id = ? AND feed_id = ?", memberID, feedID).
		Count(&count).Error
	return count > 0, err
}

// --- 카운터 ---
// 읽기-수정-쓰기 대신 원자적 UPDATE로 증감한다. UpdateColumn은
// 훅/updated_at 갱신을 건너뛴다.

func (r *FeedRepository) IncrementCounter(ctx context.Context, db *gorm.DB, feedID int64, column string) error {
	return db.WithContext(ctx).
		Model(&model.Feed{}).
		Where("id = ?", feedID).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// DecrementCounter 0 밑으로 내려가지 않도록 WHERE에 바닥 조건을 건다.
func (r *FeedRepository) DecrementCounter(ctx context.Context, db *gorm.DB, feedID int64, column string) error {
	return db.WithContext(ctx).
		Model(&model.Feed{}).
		Where("id = ? AND "+column+" > 0", feedID).
		UpdateColumn(column, gorm.Expr(column+" - 1")).Error
}

func (r *FeedRepository) CurrentCounter(ctx context.Context, db *gorm.DB, feedID int64, column string) (int, error) {
	var count int
	err := db.WithContext(ctx).
		Model(&model.Feed{}).
		Where("id = ?", feedID).
		Pluck(column, &count).Error
	return count, err
}
