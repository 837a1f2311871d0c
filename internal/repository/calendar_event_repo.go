package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// CalendarEventRepository 校历事件数据访问接口
type CalendarEventRepository interface {
	Create(ctx context.Context, event *model.CalendarEvent) error
	BatchCreate(ctx context.Context, events []model.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*model.CalendarEvent, error)
	ListBySchoolYear(ctx context.Context, schoolYearID string) ([]model.CalendarEvent, error)
	ListByRange(ctx context.Context, schoolYearID string, start, end time.Time) ([]model.CalendarEvent, error)
	Update(ctx context.Context, event *model.CalendarEvent) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type calendarEventRepo struct {
	db *gorm.DB
}

// NewCalendarEventRepo 创建 CalendarEventRepository 实例
func NewCalendarEventRepo(db *gorm.DB) CalendarEventRepository {
	return &calendarEventRepo{db: db}
}

func (r *calendarEventRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarEventRepo) BatchCreate(ctx context.Context, events []model.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

func (r *calendarEventRepo) GetByID(ctx context.Context, id string) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("calendar_event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *calendarEventRepo) ListBySchoolYear(ctx context.Context, schoolYearID string) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("school_year_id = ?", schoolYearID).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

// ListByRange 列出与闭区间 [start, end] 有交集的事件
func (r *calendarEventRepo) ListByRange(ctx context.Context, schoolYearID string, start, end time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.db.WithContext(ctx).
		Where("school_year_id = ? AND start_date <= ? AND end_date >= ?", schoolYearID, end, start).
		Order("start_date ASC").
		Find(&events).Error
	return events, err
}

func (r *calendarEventRepo) Update(ctx context.Context, event *model.CalendarEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *calendarEventRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.CalendarEvent{}).
		Where("calendar_event_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
