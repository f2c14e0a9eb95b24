package together

import (
	"context"
	"errors"
	"fmt"

	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

type TogetherService struct {
	db                 *gorm.DB
	togetherRepository *TogetherRepository
}

func NewTogetherService(db *gorm.DB, togetherRepository *TogetherRepository) *TogetherService {
	return &TogetherService{
		db:                 db,
		togetherRepository: togetherRepository,
	}
}

func (s *TogetherService) Create(ctx context.Context, memberID int64, request *CreateTogetherRequest) (*TogetherResponse, error) {
	log := logger.FromContext(ctx)

	newTogether := &model.Together{
		MemberID:    memberID,
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Mode:        request.Mode,
		Capacity:    request.Capacity,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Status:      model.TogetherStatusRecruiting,
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.togetherRepository.Create(ctx, tx, newTogether); err != nil {
			return fmt.Errorf("함께하기 생성 실패: %w", err)
		}
		// 주최자는 자동 참여
		if err := s.togetherRepository.CreateParticipant(ctx, tx, &model.TogetherParticipant{
			TogetherID: newTogether.ID,
			MemberID:   memberID,
		}); err != nil {
			return fmt.Errorf("주최자 참여 등록 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("함께하기 생성 완료", "together_id", newTogether.ID, "member_id", memberID)
	return NewTogetherResponse(newTogether, 1), nil
}

func (s *TogetherService) Get(ctx context.Context, togetherID int64) (*TogetherResponse, error) {
	found, err := s.togetherRepository.FindByID(ctx, s.db, togetherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("togetherID=%d %w", togetherID, ErrTogetherNotFound)
		}
		return nil, fmt.Errorf("함께하기 조회 실패: %w", err)
	}

	count, err := s.togetherRepository.CountParticipants(ctx, s.db, togetherID)
	if err != nil {
		return nil, fmt.Errorf("참여자 수 조회 실패: %w", err)
	}

	return NewTogetherResponse(found, count), nil
}

func (s *TogetherService) Scroll(ctx context.Context, status string, cursor *int64, size int) (*pagination.ScrollResponse[*TogetherResponse], error) {
	size = pagination.NormalizeScrollSize(size)

	togethers, err := s.togetherRepository.Scroll(ctx, s.db, model.TogetherStatus(status), cursor, size)
	if err != nil {
		return nil, fmt.Errorf("함께하기 목록 조회 실패: %w", err)
	}

	hasNext := len(togethers) > size
	if hasNext {
		togethers = togethers[:size]
	}

	responses := make([]*TogetherResponse, 0, len(togethers))
	for i := range togethers {
		count, err := s.togetherRepository.CountParticipants(ctx, s.db, togethers[i].ID)
		if err != nil {
			return nil, fmt.Errorf("참여자 수 조회 실패: %w", err)
		}
		responses = append(responses, NewTogetherResponse(&togethers[i], count))
	}

	var nextCursor *int64
	if len(responses) > 0 {
		last := responses[len(responses)-1].ID
		nextCursor = &last
	}

	result := pagination.NewScrollResponse(responses, size, hasNext, nextCursor)
	return &result, nil
}

func (s *TogetherService) Update(ctx context.Context, memberID, togetherID int64, request *UpdateTogetherRequest) (*TogetherResponse, error) {
	log := logger.FromContext(ctx)

	var response *TogetherResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.togetherRepository.FindByID(ctx, tx, togetherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("togetherID=%d %w", togetherID, ErrTogetherNotFound)
			}
			return fmt.Errorf("함께하기 조회 실패: %w", err)
		}
		if found.MemberID != memberID {
			return fmt.Errorf("togetherID=%d memberID=%d %w", togetherID, memberID, ErrTogetherAccessDenied)
		}

		if request.Title != nil {
			found.Title = *request.Title
		}
		if request.Description != nil {
			found.Description = *request.Description
		}
		if request.Category != nil {
			found.Category = *request.Category
		}
		if request.Capacity != nil {
			found.Capacity = *request.Capacity
		}
		if request.StartDate != nil {
			found.StartDate = request.StartDate
		}
		if request.EndDate != nil {
			found.EndDate = request.EndDate
		}
		if request.Status != nil {
			found.Status = model.TogetherStatus(*request.Status)
		}

		if err := s.togetherRepository.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("함께하기 수정 실패: %w", err)
		}

		count, err := s.togetherRepository.CountParticipants(ctx, tx, togetherID)
		if err != nil {
			return fmt.Errorf("참여자 수 조회 실패: %w", err)
		}

		response = NewTogetherResponse(found, count)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("함께하기 수정 완료", "together_id", togetherID, "member_id", memberID)
	return response, nil
}

func (s *TogetherService) Delete(ctx context.Context, memberID, togetherID int64) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.togetherRepository.FindByID(ctx, tx, togetherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("togetherID=%d %w", togetherID, ErrTogetherNotFound)
			}
			return fmt.Errorf("함께하기 조회 실패: %w", err)
		}
		if found.MemberID != memberID {
			return fmt.Errorf("togetherID=%d memberID=%d %w", togetherID, memberID, ErrTogetherAccessDenied)
		}

		if err := s.togetherRepository.SoftDelete(ctx, tx, togetherID); err != nil {
			return fmt.Errorf("함께하기 삭제 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("함께하기 삭제 완료", "together_id", togetherID, "member_id", memberID)
	return nil
}

// Join 참여. unique 제약으로 중복 참여가 막히며, 정원 검사는 같은 트랜잭션에서 한다.
func (s *TogetherService) Join(ctx context.Context, memberID, togetherID int64) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.togetherRepository.FindByID(ctx, tx, togetherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("togetherID=%d %w", togetherID, ErrTogetherNotFound)
			}
			return fmt.Errorf("함께하기 조회 실패: %w", err)
		}
		if found.Status != model.TogetherStatusRecruiting {
			return fmt.Errorf("togetherID=%d status=%s %w", togetherID, found.Status, ErrNotRecruiting)
		}

		count, err := s.togetherRepository.CountParticipants(ctx, tx, togetherID)
		if err != nil {
			return fmt.Errorf("참여자 수 조회 실패: %w", err)
		}
		if count >= int64(found.Capacity) {
			return fmt.Errorf("togetherID=%d %w", togetherID, ErrTogetherFull)
		}

		if err := s.togetherRepository.CreateParticipant(ctx, tx, &model.TogetherParticipant{
			TogetherID: togetherID,
			MemberID:   memberID,
		}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("togetherID=%d memberID=%d %w", togetherID, memberID, ErrAlreadyJoined)
			}
			return fmt.Errorf("참여 등록 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("함께하기 참여", "together_id", togetherID, "member_id", memberID)
	return nil
}

func (s *TogetherService) Leave(ctx context.Context, memberID, togetherID int64) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		participant, err := s.togetherRepository.FindParticipant(ctx, tx, togetherID, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("togetherID=%d memberID=%d %w", togetherID, memberID, ErrNotJoined)
			}
			return fmt.Errorf("참여 조회 실패: %w", err)
		}

		if err := s.togetherRepository.DeleteParticipant(ctx, tx, participant.ID); err != nil {
			return fmt.Errorf("참여 해제 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("함께하기 탈퇴", "together_id", togetherID, "member_id", memberID)
	return nil
}
