package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/cache"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

const (
	toggleMaxRetries = 3

	reactionColumn = "reaction_count"
	bookmarkColumn = "bookmark_count"

	rankingCacheSize = 16
	rankingCacheTTL  = time.Minute
	rankingMaxSize   = 20
	rankingWindow    = 7 * 24 * time.Hour
)

type FeedService struct {
	db             *gorm.DB
	feedRepository *FeedRepository
	rankingCache   *cache.TTLCache[string, []*FeedResponse]
}

func NewFeedService(db *gorm.DB, feedRepository *FeedRepository) *FeedService {
	rankingCache, err := cache.NewTTLCache[string, []*FeedResponse](rankingCacheSize, rankingCacheTTL)
	if err != nil {
		// 캐시 크기가 상수라 실패할 수 없다
		panic(fmt.Sprintf("ranking cache 초기화 실패: %v", err))
	}
	return &FeedService{
		db:             db,
		feedRepository: feedRepository,
		rankingCache:   rankingCache,
	}
}

func (s *FeedService) CreateFeed(ctx context.Context, memberID int64, request *CreateFeedRequest) (*FeedResponse, error) {
	log := logger.FromContext(ctx)

	if len(request.Images) > maxImageCount {
		return nil, fmt.Errorf("images=%d %w", len(request.Images), ErrTooManyImages)
	}

	feedType := model.FeedType(request.FeedType)
	if feedType == model.FeedTypeTogetherVerification && request.TogetherID == nil {
		return nil, fmt.Errorf("%w", ErrTogetherRequired)
	}

	newFeed := &model.Feed{
		MemberID:   memberID,
		FeedType:   feedType,
		Content:    request.Content,
		Visibility: model.FeedVisibility(request.Visibility),
		TogetherID: request.TogetherID,
	}
	for i, img := range request.Images {
		newFeed.Images = append(newFeed.Images, model.FeedImage{
			ImageURL:         img.ImageURL,
			Width:            img.Width,
			Height:           img.Height,
			DisplayOrder:     i,
			FileSize:         img.FileSize,
			OriginalFileName: img.OriginalFileName,
		})
	}
	for i, tag := range NormalizeTags(request.Tags) {
		newFeed.Tags = append(newFeed.Tags, model.FeedTag{
			TagName:  tag,
			Position: i,
		})
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := s.feedRepository.Create(ctx, tx, newFeed); err != nil {
			return fmt.Errorf("피드 생성 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("피드 생성 완료", "feed_id", newFeed.ID, "member_id", memberID)

	created, err := s.feedRepository.FindByID(ctx, s.db, newFeed.ID)
	if err != nil {
		return nil, fmt.Errorf("생성된 피드 조회 실패: %w", err)
	}
	return NewFeedResponse(created), nil
}

func (s *FeedService) GetFeed(ctx context.Context, feedID int64, viewerID *int64) (*FeedResponse, error) {
	found, err := s.feedRepository.FindByID(ctx, s.db, feedID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("feedID=%d %w", feedID, ErrFeedNotFound)
		}
		return nil, fmt.Errorf("피드 조회 실패: %w", err)
	}

	// 비공개 피드는 작성자만 조회 가능
	if found.Visibility == model.VisibilityPrivate {
		if viewerID == nil || *viewerID != found.MemberID {
			return nil, fmt.Errorf("feedID=%d %w", feedID, ErrFeedAccessDenied)
		}
	}

	response := NewFeedResponse(found)
	if viewerID != nil {
		s.fillViewerFlags(ctx, response, *viewerID)
	}
	return response, nil
}

func (s *FeedService) UpdateFeed(ctx context.Context, memberID, feedID int64, request *UpdateFeedRequest) (*FeedResponse, error) {
	log := logger.FromContext(ctx)

	if len(request.Images) > maxImageCount {
		return nil, fmt.Errorf("images=%d %w", len(request.Images), ErrTooManyImages)
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.feedRepository.FindByID(ctx, tx, feedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("feedID=%d %w", feedID, ErrFeedNotFound)
			}
			return fmt.Errorf("피드 조회 실패: %w", err)
		}
		if found.MemberID != memberID {
			return fmt.Errorf("feedID=%d memberID=%d %w", feedID, memberID, ErrFeedAccessDenied)
		}

		if request.Content != nil {
			found.Content = *request.Content
		}
		if request.Visibility != nil {
			found.Visibility = model.FeedVisibility(*request.Visibility)
		}

		// 연관은 Save로 덮어쓰지 않고 명시적으로 교체
		found.Images = nil
		found.Tags = nil
		if err := s.feedRepository.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("피드 수정 실패: %w", err)
		}

		if request.Images != nil {
			images := make([]model.FeedImage, 0, len(request.Images))
			for i, img := range request.Images {
				images = append(images, model.FeedImage{
					FeedID:           feedID,
					ImageURL:         img.ImageURL,
					Width:            img.Width,
					Height:           img.Height,
					DisplayOrder:     i,
					FileSize:         img.FileSize,
					OriginalFileName: img.OriginalFileName,
				})
			}
			if err := s.feedRepository.ReplaceImages(ctx, tx, feedID, images); err != nil {
				return fmt.Errorf("이미지 교체 실패: %w", err)
			}
		}

		if request.Tags != nil {
			tags := make([]model.FeedTag, 0)
			for i, tag := range NormalizeTags(request.Tags) {
				tags = append(tags, model.FeedTag{
					FeedID:   feedID,
					TagName:  tag,
					Position: i,
				})
			}
			if err := s.feedRepository.ReplaceTags(ctx, tx, feedID, tags); err != nil {
				return fmt.Errorf("태그 교체 실패: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("피드 수정 완료", "feed_id", feedID, "member_id", memberID)

	updated, err := s.feedRepository.FindByID(ctx, s.db, feedID)
	if err != nil {
		return nil, fmt.Errorf("수정된 피드 조회 실패: %w", err)
	}
	return NewFeedResponse(updated), nil
}

func (s *FeedService) DeleteFeed(ctx context.Context, memberID, feedID int64) error {
	log := logger.FromContext(ctx)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.feedRepository.FindByID(ctx, tx, feedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("feedID=%d %w", feedID, ErrFeedNotFound)
			}
			return fmt.Errorf("피드 조회 실패: %w", err)
		}
		if found.MemberID != memberID {
			return fmt.Errorf("feedID=%d memberID=%d %w", feedID, memberID, ErrFeedAccessDenied)
		}

		if err := s.feedRepository.SoftDelete(ctx, tx, feedID); err != nil {
			return fmt.Errorf("피드 삭제 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("피드 삭제 완료", "feed_id", feedID, "member_id", memberID)
	return nil
}

// Scroll 공개 피드 최신순 무한 스크롤
func (s *FeedService) Scroll(ctx context.Context, cursor *int64, size int, viewerID *int64) (*pagination.ScrollResponse[*FeedResponse], error) {
	size = pagination.NormalizeScrollSize(size)

	feeds, err := s.feedRepository.Scroll(ctx, s.db, cursor, size)
	if err != nil {
		return nil, fmt.Errorf("피드 스크롤 조회 실패: %w", err)
	}

	return s.buildScrollResponse(ctx, feeds, size, viewerID), nil
}

// Search 동적 조건 검색
func (s *FeedService) Search(ctx context.Context, cond *SearchCondition, cursor *int64, size int, viewerID *int64) (*pagination.ScrollResponse[*FeedResponse], error) {
	size = pagination.NormalizeScrollSize(size)
	if cond.SortBy != "" && !ValidSortBy(cond.SortBy) {
		cond.SortBy = SortLatest
	}

	feeds, err := s.feedRepository.Search(ctx, s.db, cond, cursor, size)
	if err != nil {
		return nil, fmt.Errorf("피드 검색 실패: %w", err)
	}

	return s.buildScrollResponse(ctx, feeds, size, viewerID), nil
}

// SearchPage 오프셋 기반 동적 검색. 커서가 무의미한 인기순 정렬에서 쓴다.
func (s *FeedService) SearchPage(ctx context.Context, cond *SearchCondition, page, size int, viewerID *int64) (*pagination.PageResponse[*FeedResponse], error) {
	page, size = pagination.NormalizePage(page, size)
	if cond.SortBy != "" && !ValidSortBy(cond.SortBy) {
		cond.SortBy = SortLatest
	}

	feeds, total, err := s.feedRepository.SearchPage(ctx, s.db, cond, page, size)
	if err != nil {
		return nil, fmt.Errorf("피드 검색 실패: %w", err)
	}

	responses := make([]*FeedResponse, 0, len(feeds))
	for i := range feeds {
		resp := NewFeedResponse(&feeds[i])
		if viewerID != nil {
			s.fillViewerFlags(ctx, resp, *viewerID)
		}
		responses = append(responses, resp)
	}

	result := pagination.NewPageResponse(responses, page, size, total)
	return &result, nil
}

// GetRanking 인기/댓글순/북마크순 상위 목록. TTL 캐시를 거친다.
func (s *FeedService) GetRanking(ctx context.Context, sortBy string, size int) ([]*FeedResponse, error) {
	if !ValidSortBy(sortBy) || sortBy == SortLatest {
		sortBy = SortPopular
	}
	size = pagination.NormalizeScrollSize(size)
	if size > rankingMaxSize {
		size = rankingMaxSize
	}

	key := fmt.Sprintf("%s:%d", sortBy, size)
	if cached, ok := s.rankingCache.Get(key); ok {
		return cached, nil
	}

	// 랭킹은 최근 일주일 작성분만 집계한다
	since := time.Now().Add(-rankingWindow)
	visibility := model.VisibilityPublic
	cond := &SearchCondition{
		Visibility: &visibility,
		StartDate:  &since,
		SortBy:     sortBy,
	}
	feeds, err := s.feedRepository.Search(ctx, s.db, cond, nil, size)
	if err != nil {
		return nil, fmt.Errorf("랭킹 조회 실패: %w", err)
	}
	if len(feeds) > size {
		feeds = feeds[:size]
	}

	responses := make([]*FeedResponse, 0, len(feeds))
	for i := range feeds {
		responses = append(responses, NewFeedResponse(&feeds[i]))
	}

	s.rankingCache.Set(key, responses)
	return responses, nil
}

// ToggleReaction 리액션 토글. unique 제약 충돌 시 재시도한다.
func (s *FeedService) ToggleReaction(ctx context.Context, memberID, feedID int64) (*ToggleResponse, error) {
	return s.toggle(ctx, memberID, feedID, reactionColumn,
		func(ctx context.Context, tx *gorm.DB) (int64, error) {
			reaction, err := s.feedRepository.FindReaction(ctx, tx, memberID, feedID)
			if err != nil {
				return 0, err
			}
			return reaction.ID, nil
		},
		func(ctx context.Context, tx *gorm.DB) error {
			return s.feedRepository.CreateReaction(ctx, tx, &model.FeedReaction{
				MemberID: memberID,
				FeedID:   feedID,
			})
		},
		s.feedRepository.DeleteReaction,
	)
}

// ToggleBookmark 북마크 토글
func (s *FeedService) ToggleBookmark(ctx context.Context, memberID, feedID int64) (*ToggleResponse, error) {
	return s.toggle(ctx, memberID, feedID, bookmarkColumn,
		func(ctx context.Context, tx *gorm.DB) (int64, error) {
			bookmark, err := s.feedRepository.FindBookmark(ctx, tx, memberID, feedID)
			if err != nil {
				return 0, err
			}
			return bookmark.ID, nil
		},
		func(ctx context.Context, tx *gorm.DB) error {
			return s.feedRepository.CreateBookmark(ctx, tx, &model.FeedBookmark{
				MemberID: memberID,
				FeedID:   feedID,
			})
		},
		s.feedRepository.DeleteBookmark,
	)
}

// toggle 읽고-행동하는 토글의 공통 구현.
// 동시 요청으로 unique 제약에 걸리면 상대가 먼저 만든 것이므로 다시 읽어 삭제 경로를 탄다.
func (s *FeedService) toggle(
	ctx context.Context,
	memberID, feedID int64,
	counterColumn string,
	find func(context.Context, *gorm.DB) (int64, error),
	create func(context.Context, *gorm.DB) error,
	remove func(context.Context, *gorm.DB, int64) (int64, error),
) (*ToggleResponse, error) {
	log := logger.FromContext(ctx)

	var response *ToggleResponse
	for attempt := 0; attempt < toggleMaxRetries; attempt++ {
		err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
			if _, err := s.feedRepository.FindByID(ctx, tx, feedID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("feedID=%d %w", feedID, ErrFeedNotFound)
				}
				return fmt.Errorf("피드 조회 실패: %w", err)
			}

			rowID, err := find(ctx, tx)
			switch {
			case err == nil:
				// 이미 있음 - 해제
				affected, err := remove(ctx, tx, rowID)
				if err != nil {
					return fmt.Errorf("토글 해제 실패: %w", err)
				}
				if affected > 0 {
					if err := s.feedRepository.DecrementCounter(ctx, tx, feedID, counterColumn); err != nil {
						return fmt.Errorf("카운터 감소 실패: %w", err)
					}
				}
				response = &ToggleResponse{FeedID: feedID, Active: false}
				return nil

			case errors.Is(err, gorm.ErrRecordNotFound):
				// 없음 - 설정
				if err := create(ctx, tx); err != nil {
					return fmt.Errorf("토글 설정 실패: %w", err)
				}
				if err := s.feedRepository.IncrementCounter(ctx, tx, feedID, counterColumn); err != nil {
					return fmt.Errorf("카운터 증가 실패: %w", err)
				}
				response = &ToggleResponse{FeedID: feedID, Active: true}
				return nil

			default:
				return fmt.Errorf("토글 상태 조회 실패: %w", err)
			}
		})

		if err == nil {
			count, err := s.feedRepository.CurrentCounter(ctx, s.db, feedID, counterColumn)
			if err != nil {
				return nil, fmt.Errorf("카운터 조회 실패: %w", err)
			}
			response.Count = count
			return response, nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("토글 동시성 충돌 - 재시도",
				"feed_id", feedID, "member_id", memberID, "attempt", attempt+1)
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("feedID=%d %w", feedID, ErrToggleConflict)
}

func (s *FeedService) buildScrollResponse(ctx context.Context, feeds []model.Feed, size int, viewerID *int64) *pagination.ScrollResponse[*FeedResponse] {
	hasNext := len(feeds) > size
	if hasNext {
		feeds = feeds[:size]
	}

	responses := make([]*FeedResponse, 0, len(feeds))
	for i := range feeds {
		resp := NewFeedResponse(&feeds[i])
		if viewerID != nil {
			s.fillViewerFlags(ctx, resp, *viewerID)
		}
		responses = append(responses, resp)
	}

	var nextCursor *int64
	if len(responses) > 0 {
		last := responses[len(responses)-1].ID
		nextCursor = &last
	}

	result := pagination.NewScrollResponse(responses, size, hasNext, nextCursor)
	return &result
}

func (s *FeedService) fillViewerFlags(ctx context.Context, resp *FeedResponse, viewerID int64) {
	if reacted, err := s.feedRepository.HasReaction(ctx, s.db, viewerID, resp.ID); err == nil {
		resp.Reacted = reacted
	}
	if bookmarked, err := s.feedRepository.HasBookmark(ctx, s.db, viewerID, resp.ID); err == nil {
		resp.Bookmarked = bookmarked
	}
}
