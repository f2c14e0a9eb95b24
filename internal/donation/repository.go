package donation

import (
	"context"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type DonationRepository struct{}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{}
}

func (r *DonationRepository) Create(ctx context.Context, db *gorm.DB, donation *model.Donation) error {
	return db.WithContext(ctx).Create(donation).Error
}

func (r *DonationRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Donation, error) {
	var donation model.Donation
	err := db.WithContext(ctx).Where("id = ?", id).First(&donation).Error
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// Scroll 캠페인 목록 커서 스크롤 (size+1개)
func (r *DonationRepository) Scroll(ctx context.Context, db *gorm.DB, cursor *int64, size int) ([]model.Donation, error) {
	query := db.WithContext(ctx).Model(&model.Donation{})
	if cursor != nil {
		query = query.Where("id < ?", *cursor)
	}

	var donations []model.Donation
	err := query.Order("id DESC").Limit(size + 1).Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// AddAmount 후원 금액 원자적 증가
func (r *DonationRepository) AddAmount(ctx context.Context, db *gorm.DB, donationID, amount int64) error {
	return db.WithContext(ctx).
		Model(&model.Donation{}).
		Where("id = ?", donationID).
		UpdateColumn("current_amount", gorm.Expr("current_amount + ?", amount)).Error
}

func (r *DonationRepository) ExistsPaymentKey(ctx context.Context, db *gorm.DB, paymentKey string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.TossPayment{}).
		Where("payment_key = ?", paymentKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DonationRepository) CreateTossPayment(ctx context.Context, db *gorm.DB, payment *model.TossPayment) error {
	return db.WithContext(ctx).Create(payment).Error
}

func (r *DonationRepository) CreateDonationPayment(ctx context.Context, db *gorm.DB, payment *model.DonationPayment) error {
	return db.WithContext(ctx).Create(payment).Error
}

// PageDonors 캠페인 후원자 내역 오프셋 페이징 (최신순)
func (r *DonationRepository) PageDonors(ctx context.Context, db *gorm.DB, donationID int64, page, size int) ([]model.DonationPayment, int64, error) {
	query := db.WithContext(ctx).
		Model(&model.DonationPayment{}).
		Where("donation_id = ?", donationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []model.DonationPayment
	err := query.
		Preload("Member").
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}
