package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/dto"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
)

// ── 学年模块业务错误 ──

var (
	ErrSchoolYearNotFound    = errors.New("学年不存在")
	ErrSchoolYearDateInvalid = errors.New("学年结束日期必须晚于开始日期")
	ErrPeriodsInvalid        = errors.New("评分期必须为 1-4 各一期且日期递增")
)

// SchoolYearService 学年业务接口
type SchoolYearService interface {
	Create(ctx context.Context, req *dto.CreateSchoolYearRequest, callerID string) (*dto.SchoolYearResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SchoolYearResponse, error)
	GetCurrent(ctx context.Context) (*dto.SchoolYearResponse, error)
	List(ctx context.Context) ([]dto.SchoolYearResponse, error)
	Activate(ctx context.Context, id string, callerID string) error
	ListUnits(ctx context.Context) ([]dto.SchoolUnitResponse, error)
}

type schoolYearService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchoolYearService 创建 SchoolYearService 实例
func NewSchoolYearService(repo *repository.Repository, logger *zap.Logger) SchoolYearService {
	return &schoolYearService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *schoolYearService) Create(ctx context.Context, req *dto.CreateSchoolYearRequest, callerID string) (*dto.SchoolYearResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrSchoolYearDateInvalid
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrSchoolYearDateInvalid
	}
	if !endDate.After(startDate) {
		return nil, ErrSchoolYearDateInvalid
	}

	periods, err := buildPeriods(req.Periods)
	if err != nil {
		return nil, err
	}

	year := &model.SchoolYear{
		Year:      req.Year,
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  false,
		Periods:   periods,
	}
	year.CreatedBy = auditRef(callerID)
	year.UpdatedBy = auditRef(callerID)

	if err := s.repo.SchoolYear.Create(ctx, year); err != nil {
		s.logger.Error("创建学年失败", zap.Error(err))
		return nil, err
	}

	return toSchoolYearResponse(year), nil
}

// buildPeriods 校验并构造 4 个评分期：编号 1-4 各出现一次，日期逐期递增
func buildPeriods(inputs []dto.GradingPeriodInput) ([]model.GradingPeriod, error) {
	seen := [5]bool{}
	periods := make([]model.GradingPeriod, 4)
	for _, in := range inputs {
		if in.Number < 1 || in.Number > 4 || seen[in.Number] {
			return nil, ErrPeriodsInvalid
		}
		seen[in.Number] = true

		start, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, ErrPeriodsInvalid
		}
		end, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, ErrPeriodsInvalid
		}
		if !end.After(start) {
			return nil, ErrPeriodsInvalid
		}
		periods[in.Number-1] = model.GradingPeriod{
			Number:    in.Number,
			StartDate: start,
			EndDate:   end,
		}
	}
	for i := 1; i < 4; i++ {
		if !periods[i].StartDate.After(periods[i-1].EndDate) {
			return nil, ErrPeriodsInvalid
		}
	}
	return periods, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *schoolYearService) GetByID(ctx context.Context, id string) (*dto.SchoolYearResponse, error) {
	year, err := s.repo.SchoolYear.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolYearNotFound
		}
		s.logger.Error("查询学年失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSchoolYearResponse(year), nil
}

// ────────────────────── GetCurrent ──────────────────────

func (s *schoolYearService) GetCurrent(ctx context.Context) (*dto.SchoolYearResponse, error) {
	year, err := s.repo.SchoolYear.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSchoolYearNotFound
		}
		s.logger.Error("查询当前学年失败", zap.Error(err))
		return nil, err
	}
	return toSchoolYearResponse(year), nil
}

// ────────────────────── List ──────────────────────

func (s *schoolYearService) List(ctx context.Context) ([]dto.SchoolYearResponse, error) {
	years, err := s.repo.SchoolYear.List(ctx)
	if err != nil {
		s.logger.Error("列出学年失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SchoolYearResponse, 0, len(years))
	for i := range years {
		result = append(result, *toSchoolYearResponse(&years[i]))
	}
	return result, nil
}

// ────────────────────── Activate ──────────────────────

func (s *schoolYearService) Activate(ctx context.Context, id string, callerID string) error {
	year, err := s.repo.SchoolYear.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSchoolYearNotFound
		}
		s.logger.Error("查询学年失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.SchoolYear.ClearActive(ctx); err != nil {
		s.logger.Error("重置当前学年标记失败", zap.Error(err))
		return err
	}

	year.IsActive = true
	year.UpdatedBy = auditRef(callerID)
	if err := s.repo.SchoolYear.Update(ctx, year); err != nil {
		s.logger.Error("激活学年失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("学年已激活", zap.String("id", id), zap.Int("year", year.Year))
	return nil
}

// ────────────────────── ListUnits ──────────────────────

func (s *schoolYearService) ListUnits(ctx context.Context) ([]dto.SchoolUnitResponse, error) {
	units, err := s.repo.SchoolUnit.List(ctx)
	if err != nil {
		s.logger.Error("查询校区列表失败", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.SchoolUnitResponse, 0, len(units))
	for _, u := range units {
		resp = append(resp, dto.SchoolUnitResponse{
			ID:   u.UnitID,
			Code: u.Code,
			Name: u.Name,
		})
	}
	return resp, nil
}

// ────────────────────── 响应转换 ──────────────────────

func toSchoolYearResponse(year *model.SchoolYear) *dto.SchoolYearResponse {
	resp := &dto.SchoolYearResponse{
		ID:        year.SchoolYearID,
		Year:      year.Year,
		StartDate: year.StartDate.Format("2006-01-02"),
		EndDate:   year.EndDate.Format("2006-01-02"),
		IsActive:  year.IsActive,
		CreatedAt: year.CreatedAt.Format(time.RFC3339),
		UpdatedAt: year.UpdatedAt.Format(time.RFC3339),
	}
	for _, p := range year.Periods {
		resp.Periods = append(resp.Periods, dto.GradingPeriodResponse{
			ID:        p.GradingPeriodID,
			Number:    p.Number,
			StartDate: p.StartDate.Format("2006-01-02"),
			EndDate:   p.EndDate.Format("2006-01-02"),
		})
	}
	return resp
}
