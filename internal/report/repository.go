package report

import (
	"context"

	"github.com/team-moa/moa-api-server/internal/model"
	"gorm.io/gorm"
)

type ReportRepository struct{}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

func (r *ReportRepository) Create(ctx context.Context, db *gorm.DB, report *model.Report) error {
	return db.WithContext(ctx).Create(report).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*model.Report, error) {
	var report model.Report
	err := db.WithContext(ctx).Where("id = ?", id).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) Update(ctx context.Context, db *gorm.DB, report *model.Report) error {
	return db.WithContext(ctx).Save(report).Error
}

// ExistsByReporterAndTarget 동일 대상에 대한 중복 신고 확인
func (r *ReportRepository) ExistsByReporterAndTarget(ctx context.Context, db *gorm.DB, reporterID int64, targetType model.ReportTargetType, targetID int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Report{}).
		Where("reporter_id = ? AND target_type = ? AND target_id = ?", reporterID, targetType, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByTarget 대상의 누적 신고 수 (자동 숨김 판정용)
func (r *ReportRepository) CountByTarget(ctx context.Context, db *gorm.DB, targetType model.ReportTargetType, targetID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Report{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

// PageByReporter 신고자 본인의 신고 내역 오프셋 페이징 (최신순)
func (r *ReportRepository) PageByReporter(ctx context.Context, db *gorm.DB, reporterID int64, page, size int) ([]model.Report, int64, error) {
	query := db.WithContext(ctx).
		Model(&model.Report{}).
		Where("reporter_id = ?", reporterID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// FindByTarget 특정 대상에 쌓인 신고 전체 (최신순)
func (r *ReportRepository) FindByTarget(ctx context.Context, db *gorm.DB, targetType model.ReportTargetType, targetID int64) ([]model.Report, error) {
	var reports []model.Report
	err := db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// PageByReportedMember 특정 회원이 피신고자인 신고 내역 오프셋 페이징 (최신순)
func (r *ReportRepository) PageByReportedMember(ctx context.Context, db *gorm.DB, memberID int64, page, size int) ([]model.Report, int64, error) {
	query := db.WithContext(ctx).
		Model(&model.Report{}).
		Where("reported_member_id = ?", memberID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// frequentTargetRow 다발 신고 대상 집계 행
type frequentTargetRow struct {
	TargetType model.ReportTargetType
	TargetID   int64
	Total      int64
}

// FrequentTargets minCount 이상 신고가 쌓인 대상 (많은 순)
func (r *ReportRepository) FrequentTargets(ctx context.Context, db *gorm.DB, minCount int64) ([]frequentTargetRow, error) {
	var rows []frequentTargetRow
	err := db.WithContext(ctx).
		Model(&model.Report{}).
		Select("target_type, target_id, COUNT(*) AS total").
		Group("target_type, target_id").
		Having("COUNT(*) >= ?", minCount).
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// frequentMemberRow 다발 피신고 회원 집계 행
type frequentMemberRow struct {
	ReportedMemberID int64
	Total            int64
}

// FrequentReportedMembers minCount 이상 신고당한 회원 (많은 순)
func (r *ReportRepository) FrequentReportedMembers(ctx context.Context, db *gorm.DB, minCount int64) ([]frequentMemberRow, error) {
	var rows []frequentMemberRow
	err := db.WithContext(ctx).
		Model(&model.Report{}).
		Select("reported_member_id, COUNT(*) AS total").
		Where("reported_member_id IS NOT NULL").
		Group("reported_member_id").
		Having("COUNT(*) >= ?", minCount).
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountPendingByTargetType 대상 유형별 미처리 신고 건수
func (r *ReportRepository) CountPendingByTargetType(ctx context.Context, db *gorm.DB) (map[model.ReportTargetType]int64, error) {
	var rows []struct {
		TargetType model.ReportTargetType
		Total      int64
	}
	err := db.WithContext(ctx).
		Model(&model.Report{}).
		Select("target_type, COUNT(*) AS total").
		Where("status = ?", model.ReportStatusPending).
		Group("target_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.ReportTargetType]int64, len(rows))
	for _, row := range rows {
		counts[row.TargetType] = row.Total
	}
	return counts, nil
}

// CountGroupByStatus 상태별 신고 건수 (관리자 통계)
func (r *ReportRepository) CountGroupByStatus(ctx context.Context, db *gorm.DB) (map[model.ReportStatus]int64, error) {
	var rows []struct {
		Status model.ReportStatus
		Total  int64
	}
	err := db.WithContext(ctx).
		Model(&model.Report{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.ReportStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// Page 관리자용 오프셋 페이징. status/targetType이 비어 있으면 해당 필터 없이 전체.
func (r *ReportRepository) Page(ctx context.Context, db *gorm.DB, status model.ReportStatus, targetType model.ReportTargetType, page, size int) ([]model.Report, int64, error) {
	query := db.WithContext(ctx).Model(&model.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if targetType != "" {
		query = query.Where("target_type = ?", targetType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []model.Report
	err := query.
		Order("id DESC").
		Offset(page * size).
		Limit(size).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}
