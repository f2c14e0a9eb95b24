package comment

import (
	"context"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, db *gorm.DB, comment *model.Comment) error {
	return db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := db.WithContext(ctx).
		Preload("Member").
		Where("id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByIDUnscoped 삭제된 댓글 포함 조회 (신고 처리용)
func (r *CommentRepository) FindByIDUnscoped(ctx context.Context, db *gorm.DB, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, db *gorm.DB, comment *model.Comment) error {
	return db.WithContext(ctx).Save(comment).Error
}

func (r *CommentRepository) SoftDelete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}

// ScrollTopLevel 피드의 최상위 댓글을 오래된 순으로 커서 조회 (size+1개)
func (r *CommentRepository) ScrollTopLevel(ctx context.Context, db *gorm.DB, commentType model.CommentType, targetID int64, cursor *int64, size int) ([]model.Comment, error) {
	query := db.WithContext(ctx).
		Preload("Member").
		Where("comment_type = ? AND parent_id IS NULL", commentType)

	switch commentType {
	case model.CommentTypeFeed:
		query = query.Where("feed_id = ?", targetID)
	case model.CommentTypeTogether:
		query = query.Where("together_id = ?", targetID)
	case model.CommentTypeDonation:
		query = query.Where("donation_id = ?", targetID)
	}

	if cursor != nil {
		query = query.Where("id > ?", *cursor)
	}

	var comments []model.Comment
	err := query.Order("id ASC").Limit(size + 1).Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindReplies 최상위 댓글 목록의 답글을 한 번에 조회 (N+1 방지)
func (r *CommentRepository) FindReplies(ctx context.Context, db *gorm.DB, parentIDs []int64) ([]model.Comment, error) {
	if len(parentIDs) == 0 {
		return []model.Comment{}, nil
	}

	var replies []model.Comment
	err := db.WithContext(ctx).
		Preload("Member").
		Where("parent_id IN ?", parentIDs).
		Order("id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// PopularTopLevelByFeed 피드의 최상위 댓글을 리액션 많은 순으로 조회.
// 리액션 수가 같으면 먼저 달린 댓글이 앞선다.
func (r *CommentRepository) PopularTopLevelByFeed(ctx context.Context, db *gorm.DB, feedID int64, size int) ([]model.Comment, error) {
	var comments []model.Comment
	err := db.WithContext(ctx).
		Preload("Member").
		Where("comment_type = ? AND feed_id = ? AND parent_id IS NULL", model.CommentTypeFeed, feedID).
		Order("reaction_count DESC").
		Order("created_at ASC").
		Order("id ASC").
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// RecentByFeed 피드의 최신 댓글 (답글 포함)
func (r *CommentRepository) RecentByFeed(ctx context.Context, db *gorm.DB, feedID int64, size int) ([]model.Comment, error) {
	var comments []model.Comment
	err := db.WithContext(ctx).
		Preload("Member").
		Where("comment_type = ? AND feed_id = ?", model.CommentTypeFeed, feedID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(size).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindReactedIDs 주어진 댓글 중 회원이 리액션한 것들의 id
func (r *CommentRepository) FindReactedIDs(ctx context.Context, db *gorm.DB, memberID int64, commentIDs []int64) ([]int64, error) {
	if len(commentIDs) == 0 {
		return []int64{}, nil
	}

	var ids []int64
	err := db.WithContext(ctx).
		Model(&model.CommentReaction{}).
		Where("member_id = ? AND comment_id IN ?", memberID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// --- 리액션 ---

func (r *CommentRepository) FindReaction(ctx context.Context, db *gorm.DB, memberID, commentID int64) (*model.CommentReaction, error) {
	var reaction model.CommentReaction
	err := db.WithContext(ctx).
		Where("member_id = ? AND comment_id = ?", memberID, commentID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *CommentRepository) CreateReaction(ctx context.Context, db *gorm.DB, reaction *model.CommentReaction) error {
	return db.WithContext(ctx).Create(reaction).Error
}

func (r *CommentRepository) DeleteReaction(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&model.CommentReaction{}, id)
	return result.RowsAffected, result.Error
}

// --- 카운터 ---

func (r *CommentRepository) IncrementReactionCount(ctx context.Context, db *gorm.DB, commentID int64) error {
	return db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("reaction_count", gorm.Expr("reaction_count + 1")).Error
}

// DecrementReactionCount 0 밑으로 내려가지 않는다
func (r *CommentRepository) DecrementReactionCount(ctx context.Context, db *gorm.DB, commentID int64) error {
	return db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND reaction_count > 0", commentID).
		UpdateColumn("reaction_count", gorm.Expr("reaction_count - 1")).Error
}

func (r *CommentRepository) CurrentReactionCount(ctx context.Context, db *gorm.DB, commentID int64) (int, error) {
	var count int
	err := db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", commentID).
		Pluck("reaction_count", &count).Error
	return count, err
}
