package service

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/redis"
)

// ── 校历模块业务错误 ──

var (
	ErrCalendarEventNotFound = errors.New("校历事件不存在")
	ErrEventDateInvalid      = errors.New("事件结束日期不能早于开始日期")
	ErrEventKindInvalid      = errors.New("无效的事件类型")
	ErrSubstituteDayMissing  = errors.New("补课/调课事件必须指定 substitute_day_of_week")
	ErrICSEmpty              = errors.New("ICS 内容中没有可导入的事件")
	ErrClassNotFound         = errors.New("班级不存在")
	ErrDateInvalid           = errors.New("无效的日期，格式应为 YYYY-MM-DD")
)

// CalendarService 校历业务接口
type CalendarService interface {
	Create(ctx context.Context, req *dto.CreateCalendarEventRequest, callerID string) (*dto.CalendarEventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CalendarEventResponse, error)
	List(ctx context.Context, schoolYearID string) ([]dto.CalendarEventResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCalendarEventRequest, callerID string) (*dto.CalendarEventResponse, error)
	Delete(ctx context.Context, id string, callerID string) error

	// ImportHolidaysICS 从 ICS 日历导入假日事件。
	// kind 为空时默认导入为国家法定假日；落在学年日期范围外的条目跳过。
	ImportHolidaysICS(ctx context.Context, reader io.Reader, kind string, callerID string) (*dto.ImportHolidaysICSResponse, error)

	// CheckSchoolDay 判定某日期对某班级是否为上课日
	CheckSchoolDay(ctx context.Context, dateStr, classSectionID string) (*dto.CheckSchoolDayResponse, error)
}

type calendarService struct {
	repo    *repository.Repository
	cache   *redis.Client
	matcher *EventMatcher
	logger  *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, cache *redis.Client, matcher *EventMatcher, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, cache: cache, matcher: matcher, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *calendarService) Create(ctx context.Context, req *dto.CreateCalendarEventRequest, callerID string) (*dto.CalendarEventResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrEventDateInvalid
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrEventDateInvalid
	}
	if endDate.Before(startDate) {
		return nil, ErrEventDateInvalid
	}

	year, err := s.repo.SchoolYear.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolYearNotFound
		}
		s.logger.Error("查询当前学年失败", zap.Error(err))
		return nil, err
	}

	event := &model.CalendarEvent{
		SchoolYearID:        year.SchoolYearID,
		Kind:                req.Kind,
		Title:               req.Title,
		StartDate:           startDate,
		EndDate:             endDate,
		TargetUnits:         model.StringArray(req.TargetUnits),
		TargetShifts:        model.StringArray(req.TargetShifts),
		TargetClasses:       model.StringArray(req.TargetClasses),
		TargetGrades:        model.StringArray(req.TargetGrades),
		TargetSegments:      model.StringArray(req.TargetSegments),
		TargetSubjects:      model.StringArray(req.TargetSubjects),
		SubstituteDayOfWeek: req.SubstituteDayOfWeek,
	}
	event.CreatedBy = auditRef(callerID)
	event.UpdatedBy = auditRef(callerID)

	// 周末补课日若未指定按哪个星期的课表上课，课时推算无从谈起
	if event.Kind == model.EventKindSubstitution && event.SubstituteDayOfWeek == nil {
		return nil, ErrSubstituteDayMissing
	}

	if err := s.repo.CalendarEvent.Create(ctx, event); err != nil {
		s.logger.Error("创建校历事件失败", zap.Error(err))
		return nil, err
	}

	s.invalidateTaughtHours(ctx)
	return toCalendarEventResponse(event), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *calendarService) GetByID(ctx context.Context, id string) (*dto.CalendarEventResponse, error) {
	event, err := s.repo.CalendarEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarEventNotFound
		}
		s.logger.Error("查询校历事件失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCalendarEventResponse(event), nil
}

// ────────────────────── List ──────────────────────

func (s *calendarService) List(ctx context.Context, schoolYearID string) ([]dto.CalendarEventResponse, error) {
	if schoolYearID == "" {
		year, err := s.repo.SchoolYear.GetCurrent(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolYearNotFound
			}
			return nil, err
		}
		schoolYearID = year.SchoolYearID
	}

	events, err := s.repo.CalendarEvent.ListBySchoolYear(ctx, schoolYearID)
	if err != nil {
		s.logger.Error("列出校历事件失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CalendarEventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toCalendarEventResponse(&events[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *calendarService) Update(ctx context.Context, id string, req *dto.UpdateCalendarEventRequest, callerID string) (*dto.CalendarEventResponse, error) {
	event, err := s.repo.CalendarEvent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarEventNotFound
		}
		s.logger.Error("查询校历事件失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Kind != nil {
		event.Kind = *req.Kind
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.StartDate = d
	}
	if req.EndDate != nil {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, ErrEventDateInvalid
		}
		event.EndDate = d
	}
	if event.EndDate.Before(event.StartDate) {
		return nil, ErrEventDateInvalid
	}

	if req.TargetUnits != nil {
		event.TargetUnits = model.StringArray(*req.TargetUnits)
	}
	if req.TargetShifts != nil {
		event.TargetShifts = model.StringArray(*req.TargetShifts)
	}
	if req.TargetClasses != nil {
		event.TargetClasses = model.StringArray(*req.TargetClasses)
	}
	if req.TargetGrades != nil {
		event.TargetGrades = model.StringArray(*req.TargetGrades)
	}
	if req.TargetSegments != nil {
		event.TargetSegments = model.StringArray(*req.TargetSegments)
	}
	if req.TargetSubjects != nil {
		event.TargetSubjects = model.StringArray(*req.TargetSubjects)
	}
	if req.SubstituteDayOfWeek != nil {
		event.SubstituteDayOfWeek = req.SubstituteDayOfWeek
	}

	if event.Kind == model.EventKindSubstitution && event.SubstituteDayOfWeek == nil {
		return nil, ErrSubstituteDayMissing
	}

	event.UpdatedBy = auditRef(callerID)
	if err := s.repo.CalendarEvent.Update(ctx, event); err != nil {
		s.logger.Error("更新校历事件失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.invalidateTaughtHours(ctx)
	return toCalendarEventResponse(event), nil
}

// ────────────────────── Delete ──────────────────────

func (s *calendarService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.CalendarEvent.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCalendarEventNotFound
		}
		s.logger.Error("查询校历事件失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.CalendarEvent.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除校历事件失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.invalidateTaughtHours(ctx)
	return nil
}

// ────────────────────── ImportHolidaysICS ──────────────────────

func (s *calendarService) ImportHolidaysICS(ctx context.Context, reader io.Reader, kind string, callerID string) (*dto.ImportHolidaysICSResponse, error) {
	if kind == "" {
		kind = model.EventKindNationalHoliday
	}
	switch kind {
	case model.EventKindNationalHoliday, model.EventKindStateHoliday, model.EventKindMunicipalHoliday:
	default:
		return nil, ErrEventKindInvalid
	}

	year, err := s.repo.SchoolYear.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolYearNotFound
		}
		s.logger.Error("查询当前学年失败", zap.Error(err))
		return nil, err
	}

	holidays, err := ParseHolidayICS(reader)
	if err != nil {
		return nil, err
	}
	if len(holidays) == 0 {
		return nil, ErrICSEmpty
	}

	var (
		events  []model.CalendarEvent
		skipped int
	)
	for _, h := range holidays {
		// 学年范围外的条目不导入（假日源通常跨多年）
		if h.EndDate.Before(model.DateOnly(year.StartDate)) || h.StartDate.After(model.DateOnly(year.EndDate)) {
			skipped++
			continue
		}
		ev := model.CalendarEvent{
			SchoolYearID: year.SchoolYearID,
			Kind:         kind,
			Title:        h.Title,
			StartDate:    h.StartDate,
			EndDate:      h.EndDate,
		}
		ev.CreatedBy = auditRef(callerID)
		ev.UpdatedBy = auditRef(callerID)
		events = append(events, ev)
	}

	if len(events) > 0 {
		if err := s.repo.CalendarEvent.BatchCreate(ctx, events); err != nil {
			s.logger.Error("批量导入假日失败", zap.Error(err))
			return nil, err
		}
		s.invalidateTaughtHours(ctx)
	}

	resp := &dto.ImportHolidaysICSResponse{
		ImportedCount: len(events),
		SkippedCount:  skipped,
		Events:        make([]dto.CalendarEventResponse, 0, len(events)),
	}
	for i := range events {
		resp.Events = append(resp.Events, *toCalendarEventResponse(&events[i]))
	}

	s.logger.Info("ICS 假日导入完成",
		zap.String("kind", kind),
		zap.Int("imported", len(events)),
		zap.Int("skipped", skipped))
	return resp, nil
}

// ────────────────────── CheckSchoolDay ──────────────────────

func (s *calendarService) CheckSchoolDay(ctx context.Context, dateStr, classSectionID string) (*dto.CheckSchoolDayResponse, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrDateInvalid
	}

	class, err := s.repo.ClassSection.GetByID(ctx, classSectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", classSectionID), zap.Error(err))
		return nil, err
	}

	events, err := s.repo.CalendarEvent.ListByRange(ctx, class.SchoolYearID, date, date)
	if err != nil {
		s.logger.Error("查询校历事件失败", zap.Error(err))
		return nil, err
	}

	sctx := s.matcher.ClassContext(class, "")
	isDay, effectiveWeekday := s.matcher.ClassifySchoolDay(date, sctx, events)

	resp := &dto.CheckSchoolDayResponse{
		Date:             dateStr,
		IsSchoolDay:      isDay,
		EffectiveWeekday: effectiveWeekday,
	}
	for i := range events {
		ev := &events[i]
		if ev.CoversDate(date) && s.matcher.Applies(ev, sctx) {
			resp.MatchedEvents = append(resp.MatchedEvents, ev.Title)
		}
	}
	return resp, nil
}

// ────────────────────── 内部辅助 ──────────────────────

// invalidateTaughtHours 校历变更后清空课时缓存。
// 事件过滤器里的班级值可能是历史自由文本，无法精确映射到缓存键，
// 因此统一全量失效（事件写入频率远低于课时查询）。
func (s *calendarService) invalidateTaughtHours(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warn("课时缓存失效失败", zap.Error(err))
	}
}

// toCalendarEventResponse 模型 → 响应转换
func toCalendarEventResponse(event *model.CalendarEvent) *dto.CalendarEventResponse {
	return &dto.CalendarEventResponse{
		ID:                  event.CalendarEventID,
		Kind:                event.Kind,
		Title:               event.Title,
		StartDate:           event.StartDate.Format("2006-01-02"),
		EndDate:             event.EndDate.Format("2006-01-02"),
		TargetUnits:         event.TargetUnits,
		TargetShifts:        event.TargetShifts,
		TargetClasses:       event.TargetClasses,
		TargetGrades:        event.TargetGrades,
		TargetSegments:      event.TargetSegments,
		TargetSubjects:      event.TargetSubjects,
		SubstituteDayOfWeek: event.SubstituteDayOfWeek,
		CreatedAt:           event.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           event.UpdatedAt.Format(time.RFC3339),
	}
}
