package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ClassSectionRepository 班级数据访问接口
type ClassSectionRepository interface {
	GetByID(ctx context.Context, id string) (*model.ClassSection, error)
	ListBySchoolYear(ctx context.Context, schoolYearID string) ([]model.ClassSection, error)
}

type classSectionRepo struct {
	db *gorm.DB
}

// NewClassSectionRepo 创建 ClassSectionRepository 实例
func NewClassSectionRepo(db *gorm.DB) ClassSectionRepository {
	return &classSectionRepo{db: db}
}

func (r *classSectionRepo) GetByID(ctx context.Context, id string) (*model.ClassSection, error) {
	var class model.ClassSection
	err := r.db.WithContext(ctx).
		Where("class_section_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classSectionRepo) ListBySchoolYear(ctx context.Context, schoolYearID string) ([]model.ClassSection, error) {
	var classes []model.ClassSection
	err := r.db.WithContext(ctx).
		Where("school_year_id = ?", schoolYearID).
		Order("unit_id ASC, grade_id ASC, name ASC").
		Find(&classes).Error
	return classes, err
}

// SchoolUnitRepository 校区数据访问接口
type SchoolUnitRepository interface {
	List(ctx context.Context) ([]model.SchoolUnit, error)
}

type schoolUnitRepo struct {
	db *gorm.DB
}

// NewSchoolUnitRepo 创建 SchoolUnitRepository 实例
func NewSchoolUnitRepo(db *gorm.DB) SchoolUnitRepository {
	return &schoolUnitRepo{db: db}
}

func (r *schoolUnitRepo) List(ctx context.Context) ([]model.SchoolUnit, error) {
	var units []model.SchoolUnit
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&units).Error
	return units, err
}
