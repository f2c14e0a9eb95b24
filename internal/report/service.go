package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/team-moa/moa-api-server/internal/comment"
	"github.com/team-moa/moa-api-server/internal/config"
	"github.com/team-moa/moa-api-server/internal/feed"
	"github.com/team-moa/moa-api-server/internal/member"
	"github.com/team-moa/moa-api-server/internal/model"
	"github.com/team-moa/moa-api-server/internal/shared/database"
	"github.com/team-moa/moa-api-server/internal/shared/logger"
	"github.com/team-moa/moa-api-server/internal/shared/pagination"
	"gorm.io/gorm"
)

// 다발 신고 집계의 기본 기준 건수
const (
	frequentTargetMinCount = 10
	frequentMemberMinCount = 5
)

type ReportService struct {
	db                *gorm.DB
	cfg               *config.Config
	reportRepository  *ReportRepository
	memberRepository  *member.MemberRepository
	feedRepository    *feed.FeedRepository
	commentRepository *comment.CommentRepository
}

func NewReportService(
	db *gorm.DB,
	cfg *config.Config,
	reportRepository *ReportRepository,
	memberRepository *member.MemberRepository,
	feedRepository *feed.FeedRepository,
	commentRepository *comment.CommentRepository,
) *ReportService {
	return &ReportService{
		db:                db,
		cfg:               cfg,
		reportRepository:  reportRepository,
		memberRepository:  memberRepository,
		feedRepository:    feedRepository,
		commentRepository: commentRepository,
	}
}

// resolvedTarget 신고 대상 해석 결과
type resolvedTarget struct {
	authorID       *int64 // TOGETHER는 주최자를 작성자로 본다
	alreadyDeleted bool
}

// CreateReport 신고 접수.
// 검증 순서: 신고자 → 중복 → 대상 존재(삭제 포함) → 자기 신고 → OTHER 상세.
// 접수 후 누적 신고 수가 임계값에 도달하면 대상을 자동 숨김 처리한다.
func (s *ReportService) CreateReport(ctx context.Context, reporterID int64, request *CreateReportRequest) (*CreateReportResponse, error) {
	log := logger.FromContext(ctx)

	reasonType := model.ReportReasonType(request.ReasonType)
	if !reasonType.Valid() {
		return nil, fmt.Errorf("reasonType=%s %w", request.ReasonType, ErrInvalidStatusChange)
	}
	targetType := model.ReportTargetType(request.TargetType)

	var (
		created    *model.Report
		suppressed bool
	)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		// 1. 신고자 확인
		if _, err := s.memberRepository.FindByID(ctx, tx, reporterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reporterID=%d %w", reporterID, member.ErrMemberNotFound)
			}
			return fmt.Errorf("신고자 조회 실패: %w", err)
		}

		// 2. 중복 신고 확인
		exists, err := s.reportRepository.ExistsByReporterAndTarget(ctx, tx, reporterID, targetType, request.TargetID)
		if err != nil {
			return fmt.Errorf("중복 신고 확인 실패: %w", err)
		}
		if exists {
			return fmt.Errorf("targetType=%s targetID=%d %w", targetType, request.TargetID, ErrReportDuplicated)
		}

		// 3. 대상 해석 (이미 삭제된 콘텐츠도 신고는 받는다)
		target, err := s.resolveTarget(ctx, tx, targetType, request.TargetID)
		if err != nil {
			return err
		}

		// 4. 자기 신고 금지
		if target.authorID != nil && *target.authorID == reporterID {
			return fmt.Errorf("reporterID=%d %w", reporterID, ErrSelfReportDenied)
		}

		// 5. OTHER는 상세 사유 필수
		if reasonType == model.ReasonOther &&
			(request.ReasonDetail == nil || *request.ReasonDetail == "") {
			return fmt.Errorf("%w", ErrReasonDetailRequired)
		}

		newReport := &model.Report{
			ReporterID:       reporterID,
			TargetType:       targetType,
			TargetID:         request.TargetID,
			ReportedMemberID: target.authorID,
			ReasonType:       reasonType,
			ReasonDetail:     request.ReasonDetail,
			Status:           model.ReportStatusPending,
		}
		if err := s.reportRepository.Create(ctx, tx, newReport); err != nil {
			return fmt.Errorf("신고 저장 실패: %w", err)
		}
		created = newReport

		// 누적 신고 수가 임계값에 도달하면 자동 숨김.
		// 이미 삭제된 대상은 건너뛴다 (멱등).
		total, err := s.reportRepository.CountByTarget(ctx, tx, targetType, request.TargetID)
		if err != nil {
			return fmt.Errorf("누적 신고 수 조회 실패: %w", err)
		}
		if total >= int64(s.cfg.Moderation.AutoSuppressThreshold) && !target.alreadyDeleted {
			if err := s.suppressTarget(ctx, tx, targetType, request.TargetID); err != nil {
				return err
			}
			suppressed = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("신고 접수 완료",
		"report_id", created.ID,
		"target_type", targetType,
		"target_id", request.TargetID,
		"suppressed", suppressed,
	)

	return &CreateReportResponse{
		Report:     NewReportResponse(created),
		Suppressed: suppressed,
	}, nil
}

// ListReports 관리자용 신고 목록 (오프셋 페이징, 상태/대상 유형 필터)
func (s *ReportService) ListReports(ctx context.Context, status, targetType string, page, size int) (*pagination.PageResponse[*ReportResponse], error) {
	page, size = pagination.NormalizePage(page, size)

	reports, total, err := s.reportRepository.Page(ctx, s.db, model.ReportStatus(status), model.ReportTargetType(targetType), page, size)
	if err != nil {
		return nil, fmt.Errorf("신고 목록 조회 실패: %w", err)
	}

	responses := make([]*ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, NewReportResponse(&reports[i]))
	}

	result := pagination.NewPageResponse(responses, page, size, total)
	return &result, nil
}

// ListByTarget 특정 대상에 쌓인 신고 전체 (관리자 판정 참고용)
func (s *ReportService) ListByTarget(ctx context.Context, targetType string, targetID int64) ([]*ReportResponse, error) {
	reports, err := s.reportRepository.FindByTarget(ctx, s.db, model.ReportTargetType(targetType), targetID)
	if err != nil {
		return nil, fmt.Errorf("대상별 신고 조회 실패: %w", err)
	}

	responses := make([]*ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, NewReportResponse(&reports[i]))
	}
	return responses, nil
}

// ListByReportedMember 특정 회원이 피신고자인 내역 (오프셋 페이징)
func (s *ReportService) ListByReportedMember(ctx context.Context, memberID int64, page, size int) (*pagination.PageResponse[*ReportResponse], error) {
	page, size = pagination.NormalizePage(page, size)

	reports, total, err := s.reportRepository.PageByReportedMember(ctx, s.db, memberID, page, size)
	if err != nil {
		return nil, fmt.Errorf("피신고 내역 조회 실패: %w", err)
	}

	responses := make([]*ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, NewReportResponse(&reports[i]))
	}

	result := pagination.NewPageResponse(responses, page, size, total)
	return &result, nil
}

// FrequentTargets minCount 이상 신고가 쌓인 대상. 0 이하면 기본값.
func (s *ReportService) FrequentTargets(ctx context.Context, minCount int64) ([]FrequentTargetResponse, error) {
	if minCount <= 0 {
		minCount = frequentTargetMinCount
	}

	rows, err := s.reportRepository.FrequentTargets(ctx, s.db, minCount)
	if err != nil {
		return nil, fmt.Errorf("다발 신고 대상 조회 실패: %w", err)
	}

	responses := make([]FrequentTargetResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FrequentTargetResponse{
			TargetType:  string(row.TargetType),
			TargetID:    row.TargetID,
			ReportCount: row.Total,
		})
	}
	return responses, nil
}

// FrequentReportedMembers minCount 이상 신고당한 회원. 0 이하면 기본값.
func (s *ReportService) FrequentReportedMembers(ctx context.Context, minCount int64) ([]FrequentReportedMemberResponse, error) {
	if minCount <= 0 {
		minCount = frequentMemberMinCount
	}

	rows, err := s.reportRepository.FrequentReportedMembers(ctx, s.db, minCount)
	if err != nil {
		return nil, fmt.Errorf("다발 피신고 회원 조회 실패: %w", err)
	}

	responses := make([]FrequentReportedMemberResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, FrequentReportedMemberResponse{
			MemberID:    row.ReportedMemberID,
			ReportCount: row.Total,
		})
	}
	return responses, nil
}

// ListMyReports 신고자 본인의 신고 내역 (오프셋 페이징)
func (s *ReportService) ListMyReports(ctx context.Context, reporterID int64, page, size int) (*pagination.PageResponse[*ReportResponse], error) {
	page, size = pagination.NormalizePage(page, size)

	reports, total, err := s.reportRepository.PageByReporter(ctx, s.db, reporterID, page, size)
	if err != nil {
		return nil, fmt.Errorf("내 신고 내역 조회 실패: %w", err)
	}

	responses := make([]*ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, NewReportResponse(&reports[i]))
	}

	result := pagination.NewPageResponse(responses, page, size, total)
	return &result, nil
}

// Stats 상태별 건수와 대상 유형별 미처리 건수 (관리자 대시보드용)
func (s *ReportService) Stats(ctx context.Context) (*ReportStatsResponse, error) {
	counts, err := s.reportRepository.CountGroupByStatus(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("신고 통계 조회 실패: %w", err)
	}

	pendingByType, err := s.reportRepository.CountPendingByTargetType(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("미처리 신고 통계 조회 실패: %w", err)
	}

	stats := &ReportStatsResponse{
		Pending:       counts[model.ReportStatusPending],
		Reviewing:     counts[model.ReportStatusReviewing],
		Approved:      counts[model.ReportStatusApproved],
		Rejected:      counts[model.ReportStatusRejected],
		PendingByType: make(map[string]int64, len(pendingByType)),
	}
	stats.Total = stats.Pending + stats.Reviewing + stats.Approved + stats.Rejected
	for targetType, total := range pendingByType {
		stats.PendingByType[string(targetType)] = total
	}
	return stats, nil
}

// UpdateStatus 관리자 상태 전이.
// PENDING→REVIEWING→(APPROVED|REJECTED). 종결 상태는 변경 불가.
// 종결 처리에는 관리자 코멘트가 필수이며, 승인 시 대상 콘텐츠를 숨김 처리한다.
func (s *ReportService) UpdateStatus(ctx context.Context, adminID, reportID int64, request *UpdateStatusRequest) (*ReportResponse, error) {
	log := logger.FromContext(ctx)
	newStatus := model.ReportStatus(request.Status)
	terminal := newStatus == model.ReportStatusApproved || newStatus == model.ReportStatusRejected

	var response *ReportResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.reportRepository.FindByID(ctx, tx, reportID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reportID=%d %w", reportID, ErrReportNotFound)
			}
			return fmt.Errorf("신고 조회 실패: %w", err)
		}

		if found.IsProcessed() {
			return fmt.Errorf("reportID=%d status=%s %w", reportID, found.Status, ErrReportAlreadyFinished)
		}
		if !validTransition(found.Status, newStatus) {
			return fmt.Errorf("reportID=%d %s->%s %w", reportID, found.Status, newStatus, ErrInvalidStatusChange)
		}
		if terminal && (request.AdminComment == nil || strings.TrimSpace(*request.AdminComment) == "") {
			return fmt.Errorf("reportID=%d status=%s %w", reportID, newStatus, ErrAdminCommentRequired)
		}

		found.Status = newStatus
		found.AdminComment = request.AdminComment
		if terminal {
			now := time.Now()
			found.ProcessedAt = &now
			found.ProcessedByID = &adminID
		}

		if err := s.reportRepository.Update(ctx, tx, found); err != nil {
			return fmt.Errorf("신고 상태 변경 실패: %w", err)
		}

		// 승인은 신고 내용이 타당하다는 판정이므로 대상을 숨긴다.
		// 이미 삭제된 대상은 건너뛴다 (멱등).
		if newStatus == model.ReportStatusApproved {
			target, err := s.resolveTarget(ctx, tx, found.TargetType, found.TargetID)
			if err != nil {
				if errors.Is(err, ErrReportTargetNotFound) {
					response = NewReportResponse(found)
					return nil
				}
				return err
			}
			if !target.alreadyDeleted {
				if err := s.suppressTarget(ctx, tx, found.TargetType, found.TargetID); err != nil {
					return err
				}
			}
		}

		response = NewReportResponse(found)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("신고 상태 변경",
		"report_id", reportID, "status", newStatus, "admin_id", adminID)
	return response, nil
}

func validTransition(from, to model.ReportStatus) bool {
	switch from {
	case model.ReportStatusPending:
		return to == model.ReportStatusReviewing ||
			to == model.ReportStatusApproved ||
			to == model.ReportStatusRejected
	case model.ReportStatusReviewing:
		return to == model.ReportStatusApproved || to == model.ReportStatusRejected
	}
	return false
}

func (s *ReportService) resolveTarget(ctx context.Context, tx *gorm.DB, targetType model.ReportTargetType, targetID int64) (*resolvedTarget, error) {
	switch targetType {
	case model.ReportTargetFeed:
		found, err := s.feedRepository.FindByIDUnscoped(ctx, tx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("feedID=%d %w", targetID, ErrReportTargetNotFound)
			}
			return nil, fmt.Errorf("신고 대상 피드 조회 실패: %w", err)
		}
		return &resolvedTarget{
			authorID:       &found.MemberID,
			alreadyDeleted: found.DeletedAt.Valid,
		}, nil

	case model.ReportTargetComment:
		found, err := s.commentRepository.FindByIDUnscoped(ctx, tx, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("commentID=%d %w", targetID, ErrReportTargetNotFound)
			}
			return nil, fmt.Errorf("신고 대상 댓글 조회 실패: %w", err)
		}
		return &resolvedTarget{
			authorID:       &found.MemberID,
			alreadyDeleted: found.DeletedAt.Valid,
		}, nil

	case model.ReportTargetTogether:
		var found model.Together
		err := tx.WithContext(ctx).Unscoped().Where("id = ?", targetID).First(&found).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("togetherID=%d %w", targetID, ErrReportTargetNotFound)
			}
			return nil, fmt.Errorf("신고 대상 함께하기 조회 실패: %w", err)
		}
		// 함께하기는 모임 자체에 대한 신고라 작성자를 기록하지 않는다
		return &resolvedTarget{
			authorID:       nil,
			alreadyDeleted: found.DeletedAt.Valid,
		}, nil
	}

	return nil, fmt.Errorf("targetType=%s %w", targetType, ErrReportTargetNotFound)
}

// suppressTarget 대상 콘텐츠 소프트 삭제 (자동 숨김)
func (s *ReportService) suppressTarget(ctx context.Context, tx *gorm.DB, targetType model.ReportTargetType, targetID int64) error {
	log := logger.FromContext(ctx)

	var err error
	switch targetType {
	case model.ReportTargetFeed:
		err = s.feedRepository.SoftDelete(ctx, tx, targetID)
	case model.ReportTargetComment:
		// 피드 댓글이면 피드의 댓글 수도 함께 줄여 invariant를 유지한다
		var suppressed *model.Comment
		suppressed, err = s.commentRepository.FindByIDUnscoped(ctx, tx, targetID)
		if err == nil {
			err = s.commentRepository.SoftDelete(ctx, tx, targetID)
		}
		if err == nil && suppressed.IsFeedComment() && suppressed.FeedID != nil {
			err = s.feedRepository.DecrementCounter(ctx, tx, *suppressed.FeedID, "comment_count")
		}
	case model.ReportTargetTogether:
		err = tx.WithContext(ctx).Delete(&model.Together{}, targetID).Error
	}
	if err != nil {
		return fmt.Errorf("자동 숨김 실패: %w", err)
	}

	log.Warn("누적 신고로 콘텐츠 자동 숨김",
		"target_type", targetType,
		"target_id", targetID,
		"threshold", s.cfg.Moderation.AutoSuppressThreshold,
	)
	return nil
}
