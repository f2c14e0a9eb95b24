package donation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type DonationService struct {
	db                 *gorm.DB
	donationRepository *DonationRepository
	tossClient         TossClient
}

func NewDonationService(db *gorm.DB, donationRepository *DonationRepository, tossClient TossClient) *DonationService {
	return &DonationService{
		db:                 db,
		donationRepository: donationRepository,
		tossClient:         tossClient,
	}
}

// CreateDonation 캠페인 등록 (관리자 전용, 핸들러에서 권한 확인)
func (s *DonationService) CreateDonation(ctx context.Context, request *CreateDonationRequest) (*DonationResponse, error) {
	log := logger.FromContext(ctx)

	newDonation := &model.Donation{
		Title:        request.Title,
		Description:  request.Description,
		TargetAmount: request.TargetAmount,
		StartDate:    request.StartDate,
		EndDate:      request.EndDate,
	}
	if err := s.donationRepository.Create(ctx, s.db, newDonation); err != nil {
		return nil, fmt.Errorf("캠페인 등록 실패: %w", err)
	}

	log.Info("후원 캠페인 등록", "donation_id", newDonation.ID)
	return NewDonationResponse(newDonation), nil
}

func (s *DonationService) GetDonation(ctx context.Context, donationID int64) (*DonationResponse, error) {
	found, err := s.donationRepository.FindByID(ctx, s.db, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("donationID=%d %w", donationID, ErrDonationNotFound)
		}
		return nil, fmt.Errorf("캠페인 조회 실패: %w", err)
	}
	return NewDonationResponse(found), nil
}

func (s *DonationService) Scroll(ctx context.Context, cursor *int64, size int) (*pagination.ScrollResponse[*DonationResponse], error) {
	size = pagination.NormalizeScrollSize(size)

	donations, err := s.donationRepository.Scroll(ctx, s.db, cursor, size)
	if err != nil {
		return nil, fmt.Errorf("캠페인 목록 조회 실패: %w", err)
	}

	hasNext := len(donations) > size
	if hasNext {
		donations = donations[:size]
	}

	responses := make([]*DonationResponse, 0, len(donations))
	for i := range donations {
		responses = append(responses, NewDonationResponse(&donations[i]))
	}

	var nextCursor *int64
	if len(responses) > 0 {
		last := responses[len(responses)-1].ID
		nextCursor = &last
	}

	result := pagination.NewScrollResponse(responses, size, hasNext, nextCursor)
	return &result, nil
}

// ListDonors 캠페인 후원자 내역 (오프셋 페이징)
func (s *DonationService) ListDonors(ctx context.Context, donationID int64, page, size int) (*pagination.PageResponse[*DonorResponse], error) {
	page, size = pagination.NormalizePage(page, size)

	if _, err := s.donationRepository.FindByID(ctx, s.db, donationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("donationID=%d %w", donationID, ErrDonationNotFound)
		}
		return nil, fmt.Errorf("캠페인 조회 실패: %w", err)
	}

	payments, total, err := s.donationRepository.PageDonors(ctx, s.db, donationID, page, size)
	if err != nil {
		return nil, fmt.Errorf("후원자 내역 조회 실패: %w", err)
	}

	responses := make([]*DonorResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, NewDonorResponse(&payments[i]))
	}

	result := pagination.NewPageResponse(responses, page, size, total)
	return &result, nil
}

// ConfirmPayment 토스 결제 승인 후 후원 금액 반영.
// 승인 호출은 트랜잭션 밖에서, 기록과 금액 증가는 한 트랜잭션에서 처리한다.
func (s *DonationService) ConfirmPayment(ctx context.Context, memberID int64, request *ConfirmPaymentRequest) (*ConfirmPaymentResponse, error) {
	log := logger.FromContext(ctx)

	// 캠페인 상태 선검증
	found, err := s.donationRepository.FindByID(ctx, s.db, request.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("donationID=%d %w", request.DonationID, ErrDonationNotFound)
		}
		return nil, fmt.Errorf("캠페인 조회 실패: %w", err)
	}
	if found.EndDate != nil && found.EndDate.Before(time.Now()) {
		return nil, fmt.Errorf("donationID=%d %w", request.DonationID, ErrDonationClosed)
	}

	// 동일 paymentKey 재처리 방지
	exists, err := s.donationRepository.ExistsPaymentKey(ctx, s.db, request.PaymentKey)
	if err != nil {
		return nil, fmt.Errorf("결제 중복 확인 실패: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("paymentKey=%s %w", request.PaymentKey, ErrPaymentDuplicated)
	}

	result, err := s.tossClient.Confirm(ctx, &TossConfirmRequest{
		PaymentKey: request.PaymentKey,
		OrderID:    request.OrderID,
		Amount:     request.Amount,
	})
	if err != nil {
		log.Error("토스 결제 승인 실패", "payment_key", request.PaymentKey, "error", err)
		return nil, err
	}
	if result.Status != string(model.TossPaymentDone) {
		return nil, fmt.Errorf("status=%s %w", result.Status, ErrPaymentNotApproved)
	}

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		tossPayment := &model.TossPayment{
			MemberID:   memberID,
			PaymentKey: result.PaymentKey,
			OrderID:    result.OrderID,
			Amount:     request.Amount,
			Status:     model.TossPaymentDone,
			ApprovedAt: result.ApprovedAt,
		}
		if err := s.donationRepository.CreateTossPayment(ctx, tx, tossPayment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("paymentKey=%s %w", request.PaymentKey, ErrPaymentDuplicated)
			}
			return fmt.Errorf("결제 기록 저장 실패: %w", err)
		}

		donationPayment := &model.DonationPayment{
			DonationID:    request.DonationID,
			MemberID:      memberID,
			Amount:        request.Amount,
			PaymentMethod: result.Method,
		}
		if err := s.donationRepository.CreateDonationPayment(ctx, tx, donationPayment); err != nil {
			return fmt.Errorf("후원 내역 저장 실패: %w", err)
		}

		if err := s.donationRepository.AddAmount(ctx, tx, request.DonationID, request.Amount); err != nil {
			return fmt.Errorf("후원 금액 반영 실패: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.donationRepository.FindByID(ctx, s.db, request.DonationID)
	if err != nil {
		return nil, fmt.Errorf("캠페인 재조회 실패: %w", err)
	}

	log.Info("후원 결제 완료",
		"donation_id", request.DonationID,
		"member_id", memberID,
		"amount", request.Amount,
	)

	return &ConfirmPaymentResponse{
		DonationID:    request.DonationID,
		PaymentKey:    request.PaymentKey,
		Amount:        request.Amount,
		CurrentAmount: updated.CurrentAmount,
	}, nil
}
