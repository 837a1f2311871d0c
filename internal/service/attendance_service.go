package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/config"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/redis"
)

// ── 考勤对账模块业务错误 ──

var (
	ErrPeriodNotFound   = errors.New("评分期不存在")
	ErrBimesterInvalid  = errors.New("双月期编号应为 1-4")
	ErrPeriodMismatched = errors.New("评分期不属于该班级所在学年")
)

// 差异条目原因
const (
	discrepancyAbsenceExceedsTaught = "absence_exceeds_taught"
	discrepancyEstimatedBaseline    = "estimated_baseline"
)

// AttendanceService 考勤对账业务接口
//
// 设计说明：
//   - 授课课时由课表 × 校历逐日推算，计算代价与日期跨度成正比，
//     结果在 Redis 中按 (班级, 学科, 评分期) 缓存；
//   - 估算值（班级无课表）不进缓存，重算代价可忽略且状态易变；
//   - 差异报告对账录入的缺勤课时与推算的授课课时，供教务排查
//     录入错误或课表缺失。
type AttendanceService interface {
	SubjectTaughtHours(ctx context.Context, classSectionID, subject, periodID string) (*dto.TaughtHoursResponse, error)
	Discrepancies(ctx context.Context, classSectionID string, bimester int) (*dto.DiscrepancyReportResponse, error)
}

type attendanceService struct {
	cfg     *config.Config
	repo    *repository.Repository
	cache   *redis.Client
	matcher *EventMatcher
	logger  *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, cache *redis.Client, matcher *EventMatcher, logger *zap.Logger) AttendanceService {
	return &attendanceService{cfg: cfg, repo: repo, cache: cache, matcher: matcher, logger: logger}
}

// ────────────────────── SubjectTaughtHours ──────────────────────

func (s *attendanceService) SubjectTaughtHours(ctx context.Context, classSectionID, subject, periodID string) (*dto.TaughtHoursResponse, error) {
	class, err := s.repo.ClassSection.GetByID(ctx, classSectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", classSectionID), zap.Error(err))
		return nil, err
	}

	period, err := s.repo.SchoolYear.GetPeriod(ctx, periodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeriodNotFound
		}
		s.logger.Error("查询评分期失败", zap.String("id", periodID), zap.Error(err))
		return nil, err
	}
	if period.SchoolYearID != class.SchoolYearID {
		return nil, ErrPeriodMismatched
	}

	resp := &dto.TaughtHoursResponse{
		ClassSectionID: classSectionID,
		Subject:        subject,
		PeriodID:       periodID,
	}

	if s.cache != nil {
		hours, found, err := s.cache.GetTaughtHours(ctx, classSectionID, Fold(subject), periodID)
		if err != nil {
			s.logger.Warn("读取课时缓存失败", zap.Error(err))
		} else if found {
			resp.Hours = hours
			resp.FromCache = true
			return resp, nil
		}
	}

	hours, estimated, err := s.computeTaughtHours(ctx, class, subject, period)
	if err != nil {
		return nil, err
	}
	resp.Hours = hours
	resp.Estimated = estimated

	if s.cache != nil && !estimated {
		if err := s.cache.SetTaughtHours(ctx, classSectionID, Fold(subject), periodID, hours, s.cfg.Cache.TaughtHoursTTL); err != nil {
			s.logger.Warn("写入课时缓存失败", zap.Error(err))
		}
	}
	return resp, nil
}

// computeTaughtHours 从课表与校历推算评分期内的授课课时
func (s *attendanceService) computeTaughtHours(ctx context.Context, class *model.ClassSection, subject string, period *model.GradingPeriod) (float64, bool, error) {
	entries, err := s.repo.ScheduleEntry.ListByClass(ctx, class.ClassSectionID)
	if err != nil {
		s.logger.Error("查询课表失败", zap.String("class_id", class.ClassSectionID), zap.Error(err))
		return 0, false, err
	}

	events, err := s.repo.CalendarEvent.ListByRange(ctx, class.SchoolYearID, period.StartDate, period.EndDate)
	if err != nil {
		s.logger.Error("查询校历事件失败", zap.Error(err))
		return 0, false, err
	}

	sctx := s.matcher.ClassContext(class, subject)
	hours, estimated := s.matcher.TaughtHours(period.StartDate, period.EndDate, subject, sctx, entries, events)
	return hours, estimated, nil
}

// ────────────────────── Discrepancies ──────────────────────

func (s *attendanceService) Discrepancies(ctx context.Context, classSectionID string, bimester int) (*dto.DiscrepancyReportResponse, error) {
	if bimester < 1 || bimester > 4 {
		return nil, ErrBimesterInvalid
	}

	class, err := s.repo.ClassSection.GetByID(ctx, classSectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", classSectionID), zap.Error(err))
		return nil, err
	}

	period, err := s.findPeriod(ctx, class.SchoolYearID, bimester)
	if err != nil {
		return nil, err
	}

	grades, err := s.repo.Grade.ListBimestersByClass(ctx, classSectionID, bimester)
	if err != nil {
		s.logger.Error("查询班级成绩失败", zap.String("class_id", classSectionID), zap.Error(err))
		return nil, err
	}

	enrollments, err := s.repo.Enrollment.ListByClass(ctx, classSectionID)
	if err != nil {
		s.logger.Error("查询班级注册失败", zap.String("class_id", classSectionID), zap.Error(err))
		return nil, err
	}
	studentName := make(map[string]string, len(enrollments))
	for i := range enrollments {
		if enrollments[i].Student != nil {
			studentName[enrollments[i].EnrollmentID] = enrollments[i].Student.Name
		}
	}

	// 同一学科对全班的授课课时相同，按学科记忆化
	type taughtResult struct {
		hours     float64
		estimated bool
	}
	taughtBySubject := make(map[string]taughtResult)

	report := &dto.DiscrepancyReportResponse{
		ClassSectionID: classSectionID,
		Bimester:       bimester,
		Items:          []dto.DiscrepancyItem{},
	}

	for i := range grades {
		g := &grades[i]

		key := Fold(g.Subject)
		taught, ok := taughtBySubject[key]
		if !ok {
			hours, estimated, err := s.computeTaughtHours(ctx, class, g.Subject, period)
			if err != nil {
				return nil, err
			}
			taught = taughtResult{hours: hours, estimated: estimated}
			taughtBySubject[key] = taught
		}

		var reason string
		switch {
		case taught.estimated && g.AbsenceHours > 0:
			// 无课表可对账，缺勤值只能人工核实
			reason = discrepancyEstimatedBaseline
		case !taught.estimated && g.AbsenceHours > taught.hours:
			reason = discrepancyAbsenceExceedsTaught
		default:
			continue
		}

		report.Items = append(report.Items, dto.DiscrepancyItem{
			EnrollmentID: g.EnrollmentID,
			StudentName:  studentName[g.EnrollmentID],
			Subject:      g.Subject,
			AbsenceHours: g.AbsenceHours,
			TaughtHours:  taught.hours,
			Estimated:    taught.estimated,
			Reason:       reason,
		})
	}

	return report, nil
}

// findPeriod 按双月期编号定位学年内的评分期
func (s *attendanceService) findPeriod(ctx context.Context, schoolYearID string, bimester int) (*model.GradingPeriod, error) {
	periods, err := s.repo.SchoolYear.ListPeriods(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("查询评分期失败", zap.String("school_year_id", schoolYearID), zap.Error(err))
		return nil, err
	}
	for i := range periods {
		if periods[i].Number == bimester {
			return &periods[i], nil
		}
	}
	return nil, ErrPeriodNotFound
}
