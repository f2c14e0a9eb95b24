package together

import (
	"context"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type TogetherRepository struct{}

func NewTogetherRepository() *TogetherRepository {
	return &TogetherRepository{}
}

func (r *TogetherRepository) Create(ctx context.Context, db *gorm.DB, together *model.Together) error {
	return db.WithContext(ctx).Create(together).Error
}

func (r *TogetherRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Together, error) {
	var together model.Together
	err := db.WithContext(ctx).Where("id = ?", id).First(&together).Error
	if err != nil {
		return nil, err
	}
	return &together, nil
}

func (r *TogetherRepository) Update(ctx context.Context, db *gorm.DB, together *model.Together) error {
	return db.WithContext(ctx).Save(together).Error
}

func (r *TogetherRepository) SoftDelete(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&model.Together{}, id).Error
}

// Scroll 모집 목록 커서 스크롤 (size+1개)
func (r *TogetherRepository) Scroll(ctx context.Context, db *gorm.DB, status model.TogetherStatus, cursor *int64, size int) ([]model.Together, error) {
	query := db.WithContext(ctx).Model(&model.Together{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if cursor != nil {
		query = query.Where("id < ?", *cursor)
	}

	var togethers []model.Together
	err := query.Order("id DESC").Limit(size + 1).Find(&togethers).Error
	if err != nil {
		return nil, err
	}
	return togethers, nil
}

// --- 참여자 ---

func (r *TogetherRepository) CountParticipants(ctx context.Context, db *gorm.DB, togetherID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.TogetherParticipant{}).
		Where("together_id = ?", togetherID).
		Count(&count).Error
	return count, err
}

func (r *TogetherRepository) FindParticipant(ctx context.Context, db *gorm.DB, togetherID, memberID int64) (*model.TogetherParticipant, error) {
	var participant model.TogetherParticipant
	err := db.WithContext(ctx).
		Where("together_id = ? AND member_id = ?", togetherID, memberID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *TogetherRepository) CreateParticipant(ctx context.Context, db *gorm.DB, participant *model.TogetherParticipant) error {
	return db.WithContext(ctx).Create(participant).Error
}

func (r *TogetherRepository) DeleteParticipant(ctx context.Context, db *gorm.DB, id int64) error {
	return db.WithContext(ctx).Delete(&model.TogetherParticipant{}, id).Error
}
