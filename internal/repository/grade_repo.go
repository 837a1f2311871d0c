package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/errors"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// GradeRepository 成绩数据访问接口
type GradeRepository interface {
	GetBimester(ctx context.Context, enrollmentID, subject string, bimester int) (*model.BimesterGrade, error)
	ListBimesters(ctx context.Context, enrollmentID, subject string) ([]model.BimesterGrade, error)
	ListBimestersByClass(ctx context.Context, classSectionID string, bimester int) ([]model.BimesterGrade, error)
	SaveBimester(ctx context.Context, grade *model.BimesterGrade) error
	GetAnnual(ctx context.Context, enrollmentID, subject string) (*model.AnnualGrade, error)
	ListAnnuals(ctx context.Context, enrollmentID string) ([]model.AnnualGrade, error)
	SaveAnnual(ctx context.Context, grade *model.AnnualGrade) error
	ListSubjects(ctx context.Context, enrollmentID string) ([]string, error)
}

type gradeRepo struct {
	db *gorm.DB
}

// NewGradeRepo 创建 GradeRepository 实例
func NewGradeRepo(db *gorm.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) GetBimester(ctx context.Context, enrollmentID, subject string, bimester int) (*model.BimesterGrade, error) {
	var grade model.BimesterGrade
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND subject = ? AND bimester = ?", enrollmentID, subject, bimester).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) ListBimesters(ctx context.Context, enrollmentID, subject string) ([]model.BimesterGrade, error) {
	var grades []model.BimesterGrade
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND subject = ?", enrollmentID, subject).
		Order("bimester ASC").
		Find(&grades).Error
	return grades, err
}

func (r *gradeRepo) ListBimestersByClass(ctx context.Context, classSectionID string, bimester int) ([]model.BimesterGrade, error) {
	var grades []model.BimesterGrade
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.enrollment_id = bimester_grades.enrollment_id").
		Where("enrollments.class_section_id = ? AND bimester_grades.bimester = ?", classSectionID, bimester).
		Order("bimester_grades.subject ASC").
		Find(&grades).Error
	return grades, err
}

// SaveBimester 保存双月期成绩，带乐观锁（version 比对）
func (r *gradeRepo) SaveBimester(ctx context.Context, grade *model.BimesterGrade) error {
	if grade.BimesterGradeID == "" {
		return r.db.WithContext(ctx).Create(grade).Error
	}
	currentVersion := grade.Version
	grade.Version++
	result := r.db.WithContext(ctx).
		Model(&model.BimesterGrade{}).
		Where("bimester_grade_id = ? AND version = ?", grade.BimesterGradeID, currentVersion).
		Select("*").
		Updates(grade)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *gradeRepo) GetAnnual(ctx context.Context, enrollmentID, subject string) (*model.AnnualGrade, error) {
	var grade model.AnnualGrade
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND subject = ?", enrollmentID, subject).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) ListAnnuals(ctx context.Context, enrollmentID string) ([]model.AnnualGrade, error) {
	var grades []model.AnnualGrade
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("subject ASC").
		Find(&grades).Error
	return grades, err
}

// SaveAnnual 保存学年成绩汇总，带乐观锁（version 比对）
func (r *gradeRepo) SaveAnnual(ctx context.Context, grade *model.AnnualGrade) error {
	if grade.AnnualGradeID == "" {
		return r.db.WithContext(ctx).Create(grade).Error
	}
	currentVersion := grade.Version
	grade.Version++
	result := r.db.WithContext(ctx).
		Model(&model.AnnualGrade{}).
		Where("annual_grade_id = ? AND version = ?", grade.AnnualGradeID, currentVersion).
		Select("*").
		Updates(grade)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

// ListSubjects 列出某注册已有成绩记录的全部学科
func (r *gradeRepo) ListSubjects(ctx context.Context, enrollmentID string) ([]string, error) {
	var subjects []string
	err := r.db.WithContext(ctx).
		Model(&model.BimesterGrade{}).
		Where("enrollment_id = ?", enrollmentID).
		Distinct().
		Order("subject ASC").
		Pluck("subject", &subjects).Error
	return subjects, err
}
