package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/team-moa/moa-api-server/internal/feed"
	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

const (
	toggleMaxRetries  = 3
	commentCountField = "comment_count"

	recentCommentSize = 10
)

type CommentService struct {
	db                *gorm.DB
	commentRepository *CommentRepository
	feedRepository    *feed.FeedRepository
}

func NewCommentService(db *gorm.DB, commentRepository *CommentRepository, feedRepository *feed.FeedRepository) *CommentService {
	return &CommentService{
		db:                db,
		commentRepository: commentRepository,
		feedRepository:    feedRepository,
	}
}

// CreateComment 댓글/답글 작성.
// DONATION은 거부되고, 답글의 부모는 최상위 댓글이어야 한다 (2단 제한).
func (s *CommentService) CreateComment(ctx context.Context, memberID int64, request *CreateCommentRequest) (*CommentResponse, error) {
	log := logger.FromContext(ctx)

	commentType := model.CommentType(request.CommentType)
	if commentType == model.CommentTypeDonation {
		return nil, fmt.Errorf("%w", ErrDonationNotSupported)
	}

	var created *model.Comment
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		newComment := &model.Comment{
			MemberID:    memberID,
			CommentType: commentType,
			Content:     request.Content,
			ParentID:    request.ParentID,
		}

		switch commentType {
		case model.CommentTypeFeed:
			if _, err := s.feedRepository.FindByID(ctx, tx, request.TargetID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("feedID=%d %w", request.TargetID, ErrCommentTargetInvalid)
				}
				return fmt.Errorf("피드 조회 실패: %w", err)
			}
			newComment.FeedID = &request.TargetID

		case model.CommentTypeTogether:
			var count int64
			if err := tx.WithContext(ctx).
				Model(&model.Together{}).
				Where("id = ?", request.TargetID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("함께하기 조회 실패: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("togetherID=%d %w", request.TargetID, ErrCommentTargetInvalid)
			}
			newComment.TogetherID = &request.TargetID
		}

		if request.ParentID != nil {
			parent, err := s.commentRepository.FindByID(ctx, tx, *request.ParentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("parentID=%d %w", *request.ParentID, ErrCommentNotFound)
				}
				return fmt.Errorf("부모 댓글 조회 실패: %w", err)
			}
			if !parent.IsTopLevel() {
				return fmt.Errorf("parentID=%d %w", *request.ParentID, ErrReplyDepthExceeded)
			}
			if parent.CommentType != commentType || parent.TargetID() != request.TargetID {
				return fmt.Errorf("parentID=%d %w", *request.ParentID, ErrCommentTargetInvalid)
			}
		}

		if err := s.commentRepository.Create(ctx, tx, newComment); err != nil {
			return fmt.Errorf("댓글 작성 실패: %w", err)
		}

		// 피드 댓글 수는 같은 트랜잭션에서 원자적으로 증가
		if commentType == model.CommentTypeFeed {
			if err := s.feedRepository.IncrementCounter(ctx, tx, request.TargetID, commentCountField); err != nil {
				return fmt.Errorf("댓글 수 증가 실패: %w", err)
			}
		}

		created = newComment
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("댓글 작성 완료",
		"comment_id", created.ID, "member_id", memberID, "type", commentType)

	loaded, err := s.commentRepository.FindByID(ctx, s.db, created.ID)
	if err != nil {
		return nil, fmt.Errorf("작성된 댓글 조회 실패: %w", err)
	}
	response := NewCommentResponse(loaded)
	return &response, nil
}

// GetComment 단건 조회. 최상위 댓글이면 답글을 함께 싣고,
// viewerID가 있으면 리액션 여부를 채운다.
func (s *CommentService) GetComment(ctx context.Context, commentID int64, viewerID *int64) (*CommentResponse, error) {
	found, err := s.commentRepository.FindByID(ctx, s.db, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("commentID=%d %w", commentID, ErrCommentNotFound)
		}
		return nil, fmt.Errorf("댓글 조회 실패: %w", err)
	}

	response := NewCommentResponse(found)

	if found.IsTopLevel() {
		replies, err := s.commentRepository.FindReplies(ctx, s.db, []int64{found.ID})
		if err != nil {
			return nil, fmt.Errorf("답글 조회 실패: %w", err)
		}
		for i := range replies {
			response.Replies = append(response.Replies, NewCommentResponse(&replies[i]))
		}
	}

	if viewerID != nil {
		if err := s.fillReacted(ctx, *viewerID, &response); err != nil {
			return nil, err
		}
	}
	return &response, nil
}

// Replies 답글 목록. 부모가 삭제되어도 답글은 보여야 하므로
// 부모 존재 확인은 삭제분 포함으로 한다.
func (s *CommentService) Replies(ctx context.Context, parentID int64) ([]CommentResponse, error) {
	parent, err := s.commentRepository.FindByIDUnscoped(ctx, s.db, parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("parentID=%d %w", parentID, ErrCommentNotFound)
		}
		return nil, fmt.Errorf("부모 댓글 조회 실패: %w", err)
	}
	if !parent.IsTopLevel() {
		return nil, fmt.Errorf("parentID=%d %w", parentID, ErrCommentTargetInvalid)
	}

	replies, err := s.commentRepository.FindReplies(ctx, s.db, []int64{parentID})
	if err != nil {
		return nil, fmt.Errorf("답글 조회 실패: %w", err)
	}

	responses := make([]CommentResponse, 0, len(replies))
	for i := range replies {
		responses = append(responses, NewCommentResponse(&replies[i]))
	}
	return responses, nil
}

// PopularFeedComments 피드의 최상위 댓글 리액션 많은 순 상위 목록
func (s *CommentService) PopularFeedComments(ctx context.Context, feedID int64, size int) ([]CommentResponse, error) {
	size = pagination.NormalizeScrollSize(size)

	if err := s.ensureFeedExists(ctx, feedID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.PopularTopLevelByFeed(ctx, s.db, feedID, size)
	if err != nil {
		return nil, fmt.Errorf("인기 댓글 조회 실패: %w", err)
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, NewCommentResponse(&comments[i]))
	}
	return responses, nil
}

// RecentFeedComments 피드의 최신 댓글 10개 (답글 포함, 최신순)
func (s *CommentService) RecentFeedComments(ctx context.Context, feedID int64) ([]CommentResponse, error) {
	if err := s.ensureFeedExists(ctx, feedID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.RecentByFeed(ctx, s.db, feedID, recentCommentSize)
	if err != nil {
		return nil, fmt.Errorf("최신 댓글 조회 실패: %w", err)
	}

	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, NewCommentResponse(&comments[i]))
	}
	return responses, nil
}

func (s *CommentService) ensureFeedExists(ctx context.Context, feedID int64) error {
	if _, err := s.feedRepository.FindByID(ctx, s.db, feedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("feedID=%d %w", feedID, ErrCommentTargetInvalid)
		}
		return fmt.Errorf("피드 조회 실패: %w", err)
	}
	return nil
}

// fillReacted 댓글과 답글의 리액션 여부를 한 번의 조회로 채운다
func (s *CommentService) fillReacted(ctx context.Context, viewerID int64, response *CommentResponse) error {
	ids := make([]int64, 0, 1+len(response.Replies))
	ids = append(ids, response.ID)
	for i := range response.Replies {
		ids = append(ids, response.Replies[i].ID)
	}

	reactedIDs, err := s.commentRepository.FindReactedIDs(ctx, s.db, viewerID, ids)
	if err != nil {
		return fmt.Errorf("리액션 여부 조회 실패: %w", err)
	}

	reacted := make(map[int64]bool, len(reactedIDs))
	for _, id := range reactedIDs {
		reacted[id] = true
	}
	response.Reacted = reacted[response.ID]
	for i := range response.Replies {
		response.Replies[i].Reacted = reacted[response.Replies[i].ID]
	}
	return nil
}

// ListFeedComments 피드의 최상위 댓글 + 답글. 오래된 순 커서 스크롤.
func (s *CommentService) ListFeedComments(ctx context.Context, feedID int64, cursor *int64, size int) (*pagination.ScrollResponse[CommentResponse], error) {
	size = pagination.NormalizeScrollSize(size)

	if _, err := s.feedRepository.FindByID(ctx, s.db, feedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedID=%d %w", feedID, ErrCommentTargetInvalid)
		}
		return nil, fmt.Errorf("피드 조회 실패: %w", err)
	}

	topLevel, err := s.commentRepository.ScrollTopLevel(ctx, s.db, model.CommentTypeFeed, feedID, cursor, size)
	if err != nil {
		return nil, fmt.Errorf("댓글 조회 실패: %w", err)
	}

	hasNext := len(topLevel) > size
	if hasNext {
		topLevel = topLevel[:size]
	}

	parentIDs := make([]int64, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}

	replies, err := s.commentRepository.FindReplies(ctx, s.db, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("답글 조회 실패: %w", err)
	}

	repliesByParent := make(map[int64][]CommentResponse, len(parentIDs))
	for i := range replies {
		parentID := *replies[i].ParentID
		repliesByParent[parentID] = append(repliesByParent[parentID], NewCommentResponse(&replies[i]))
	}

	responses := make([]CommentResponse, 0, len(topLevel))
	for i := range topLevel {
		resp := NewCommentResponse(&topLevel[i])
		resp.Replies = repliesByParent[topLevel[i].ID]
		responses = append(responses, resp)
	}

	var nextCursor *int64
	if len(responses) > 0 {
		last := responses[len(responses)-1].ID
		nextCursor = &last
	}

	result := pagination.NewScrollResponse(responses, size, hasNext, nextCursor)
	return &result, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, memberID, commentID int64, request *UpdateCommentRequest) (*CommentResponse, error) {
	log := logger.FromContext(ctx)

	var response CommentResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.commentRepository.FindByID(ctx, tx, commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("commentID=%d %w", commentID, ErrCommentNotFound)
			}
			return fmt.Errorf("댓글 조회 실패: %w", err)
		}
		if found.MemberID != memberID {
			return fmt.Errorf("commentID=%d memberID=%d %w", commentID, memberID, ErrCommentAccessDenied)
		}

		found.Content = request.Content
		if err := s.commentRepository.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("댓글 수정 실패: %w", err)
		}

		response = NewCommentResponse(found)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("댓글 수정 완료", "comment_id", commentID, "member_id", memberID)
	return &response, nil
}

// DeleteComment 소프트 삭제. 피드 댓글이면 댓글 수를 바닥 조건과 함께 감소시킨다.
// 답글은 남겨둔다. 조회 시 부모가 삭제되어도 답글은 노출된다.
func (s *CommentService) DeleteComment(ctx context.Context, memberID, commentID int64) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.commentRepository.FindByID(ctx, tx, commentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("commentID=%d %w", commentID, ErrCommentNotFound)
			}
			return fmt.Errorf("댓글 조회 실패: %w", err)
		}
		if found.MemberID != memberID {
			return fmt.Errorf("commentID=%d memberID=%d %w", commentID, memberID, ErrCommentAccessDenied)
		}

		if err := s.commentRepository.SoftDelete(ctx, tx, commentID); err != nil {
			return fmt.Errorf("댓글 삭제 실패: %w", err)
		}

		if found.IsFeedComment() && found.FeedID != nil {
			if err := s.feedRepository.DecrementCounter(ctx, tx, *found.FeedID, commentCountField); err != nil {
				return fmt.Errorf("댓글 수 감소 실패: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("댓글 삭제 완료", "comment_id", commentID, "member_id", memberID)
	return nil
}

// ToggleReaction 댓글 리액션 토글. unique 충돌 시 재시도.
func (s *CommentService) ToggleReaction(ctx context.Context, memberID, commentID int64) (*ToggleReactionResponse, error) {
	log := logger.FromContext(ctx)

	var response *ToggleReactionResponse
	for attempt := 0; attempt < toggleMaxRetries; attempt++ {
		err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
			if _, err := s.commentRepository.FindByID(ctx, tx, commentID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("commentID=%d %w", commentID, ErrCommentNotFound)
				}
				return fmt.Errorf("댓글 조회 실패: %w", err)
			}

			reaction, err := s.commentRepository.FindReaction(ctx, tx, memberID, commentID)
			switch {
			case err == nil:
				affected, err := s.commentRepository.DeleteReaction(ctx, tx, reaction.ID)
				if err != nil {
					return fmt.Errorf("리액션 해제 실패: %w", err)
				}
				if affected > 0 {
					if err := s.commentRepository.DecrementReactionCount(ctx, tx, commentID); err != nil {
						return fmt.Errorf("리액션 수 감소 실패: %w", err)
					}
				}
				response = &ToggleReactionResponse{CommentID: commentID, Active: false}
				return nil

			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := s.commentRepository.CreateReaction(ctx, tx, &model.CommentReaction{
					MemberID:  memberID,
					CommentID: commentID,
				}); err != nil {
					return fmt.Errorf("리액션 설정 실패: %w", err)
				}
				if err := s.commentRepository.IncrementReactionCount(ctx, tx, commentID); err != nil {
					return fmt.Errorf("리액션 수 증가 실패: %w", err)
				}
				response = &ToggleReactionResponse{CommentID: commentID, Active: true}
				return nil

			default:
				return fmt.Errorf("리액션 조회 실패: %w", err)
			}
		})

		if err == nil {
			count, err := s.commentRepository.CurrentReactionCount(ctx, s.db, commentID)
			if err != nil {
				return nil, fmt.Errorf("리액션 수 조회 실패: %w", err)
			}
			response.Count = count
			return response, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("댓글 리액션 동시성 충돌 - 재시도",
				"comment_id", commentID, "member_id", memberID, "attempt", attempt+1)
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("commentID=%d %w", commentID, ErrCommentToggleTimeout)
}
