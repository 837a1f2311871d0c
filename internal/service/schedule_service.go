package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/redis"
)

// ── 课表模块业务错误 ──

var (
	ErrScheduleDayDuplicate = errors.New("同一星期不能出现多次")
	ErrSlotTimeInvalid      = errors.New("时段时间格式应为 HH:MM 且结束晚于开始")
)

// ScheduleService 课表业务接口
type ScheduleService interface {
	GetByClass(ctx context.Context, classSectionID string) (*dto.ScheduleResponse, error)
	// Replace 整体替换班级周课表（先删后插，单事务）
	Replace(ctx context.Context, classSectionID string, req *dto.ReplaceScheduleRequest, callerID string) (*dto.ScheduleResponse, error)
}

type scheduleService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── GetByClass ──────────────────────

func (s *scheduleService) GetByClass(ctx context.Context, classSectionID string) (*dto.ScheduleResponse, error) {
	if _, err := s.repo.ClassSection.GetByID(ctx, classSectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", classSectionID), zap.Error(err))
		return nil, err
	}

	entries, err := s.repo.ScheduleEntry.ListByClass(ctx, classSectionID)
	if err != nil {
		s.logger.Error("查询课表失败", zap.String("class_id", classSectionID), zap.Error(err))
		return nil, err
	}

	return toScheduleResponse(classSectionID, entries), nil
}

// ────────────────────── Replace ──────────────────────

func (s *scheduleService) Replace(ctx context.Context, classSectionID string, req *dto.ReplaceScheduleRequest, callerID string) (*dto.ScheduleResponse, error) {
	if _, err := s.repo.ClassSection.GetByID(ctx, classSectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", classSectionID), zap.Error(err))
		return nil, err
	}

	entries, err := buildScheduleEntries(classSectionID, req.Days, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ScheduleEntry.ReplaceByClass(ctx, classSectionID, entries); err != nil {
		s.logger.Error("替换课表失败", zap.String("class_id", classSectionID), zap.Error(err))
		return nil, err
	}

	// 课表变更后该班级的课时缓存全部作废
	if s.cache != nil {
		if err := s.cache.InvalidateClass(ctx, classSectionID); err != nil {
			s.logger.Warn("课时缓存失效失败", zap.String("class_id", classSectionID), zap.Error(err))
		}
	}

	s.logger.Info("课表已替换",
		zap.String("class_id", classSectionID),
		zap.Int("days", len(entries)))

	saved, err := s.repo.ScheduleEntry.ListByClass(ctx, classSectionID)
	if err != nil {
		s.logger.Error("回读课表失败", zap.String("class_id", classSectionID), zap.Error(err))
		return nil, err
	}
	return toScheduleResponse(classSectionID, saved), nil
}

// buildScheduleEntries 校验并构造课表条目。
// 时段时间必须是合法 HH:MM 且结束晚于开始——课时推算对畸形时段
// 会回退为 1 小时占位，录入口径上直接拒绝，避免静默积累脏数据。
func buildScheduleEntries(classSectionID string, days []dto.ScheduleDayInput, callerID string) ([]model.ScheduleEntry, error) {
	seen := make(map[int]bool, len(days))
	entries := make([]model.ScheduleEntry, 0, len(days))

	for _, day := range days {
		if seen[day.DayOfWeek] {
			return nil, fmt.Errorf("%w: day_of_week=%d", ErrScheduleDayDuplicate, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		entry := model.ScheduleEntry{
			ClassSectionID: classSectionID,
			DayOfWeek:      day.DayOfWeek,
		}
		entry.CreatedBy = auditRef(callerID)
		entry.UpdatedBy = auditRef(callerID)

		for i, slot := range day.Slots {
			startMin, ok := parseClockMinutes(slot.StartTime)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrSlotTimeInvalid, slot.StartTime)
			}
			endMin, ok := parseClockMinutes(slot.EndTime)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrSlotTimeInvalid, slot.EndTime)
			}
			if endMin <= startMin {
				return nil, fmt.Errorf("%w: %s-%s", ErrSlotTimeInvalid, slot.StartTime, slot.EndTime)
			}

			ss := model.SubjectSlot{
				Position:  i,
				Subject:   slot.Subject,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			}
			ss.CreatedBy = auditRef(callerID)
			ss.UpdatedBy = auditRef(callerID)
			entry.Slots = append(entry.Slots, ss)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].DayOfWeek < entries[j].DayOfWeek })
	return entries, nil
}

// parseClockMinutes 解析 HH:MM 为当日分钟数
func parseClockMinutes(clock string) (int, bool) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// toScheduleResponse 模型 → 响应转换
func toScheduleResponse(classSectionID string, entries []model.ScheduleEntry) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ClassSectionID: classSectionID,
		Days:           make([]dto.ScheduleDayResponse, 0, len(entries)),
	}
	for i := range entries {
		entry := &entries[i]
		day := dto.ScheduleDayResponse{
			ID:        entry.ScheduleEntryID,
			DayOfWeek: entry.DayOfWeek,
			Slots:     make([]dto.SubjectSlotResponse, 0, len(entry.Slots)),
		}
		for _, slot := range entry.Slots {
			day.Slots = append(day.Slots, dto.SubjectSlotResponse{
				ID:        slot.SubjectSlotID,
				Position:  slot.Position,
				Subject:   slot.Subject,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}
