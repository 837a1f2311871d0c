package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ScheduleEntryRepository 周课表数据访问接口
type ScheduleEntryRepository interface {
	ListByClass(ctx context.Context, classSectionID string) ([]model.ScheduleEntry, error)
	// ReplaceByClass 在事务中全量替换班级课表：先删除旧数据，再批量插入新数据
	ReplaceByClass(ctx context.Context, classSectionID string, entries []model.ScheduleEntry) error
}

type scheduleEntryRepo struct {
	db *gorm.DB
}

// NewScheduleEntryRepo 创建 ScheduleEntryRepository 实例
func NewScheduleEntryRepo(db *gorm.DB) ScheduleEntryRepository {
	return &scheduleEntryRepo{db: db}
}

func (r *scheduleEntryRepo) ListByClass(ctx context.Context, classSectionID string) ([]model.ScheduleEntry, error) {
	var entries []model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("class_section_id = ?", classSectionID).
		Order("day_of_week ASC").
		Find(&entries).Error
	return entries, err
}

func (r *scheduleEntryRepo) ReplaceByClass(ctx context.Context, classSectionID string, entries []model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 硬删除旧课表（替换场景，时段随条目级联删除）
		var oldIDs []string
		if err := tx.Model(&model.ScheduleEntry{}).
			Where("class_section_id = ?", classSectionID).
			Pluck("schedule_entry_id", &oldIDs).Error; err != nil {
			return err
		}
		if len(oldIDs) > 0 {
			if err := tx.Where("schedule_entry_id IN ?", oldIDs).
				Delete(&model.SubjectSlot{}).Error; err != nil {
				return err
			}
			if err := tx.Where("class_section_id = ?", classSectionID).
				Delete(&model.ScheduleEntry{}).Error; err != nil {
				return err
			}
		}
		if len(entries) > 0 {
			if err := tx.Create(&entries).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
