package service

import (
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── 学生上下文构造 ──

// ClassContext 从班级记录构造匹配上下文。
// 班级表的 UnitID/ShiftID/GradeID 已是规范化 ID，无需回落解析。
func (m *EventMatcher) ClassContext(cs *model.ClassSection, subject string) *StudentContext {
	segment, _ := m.resolver.SegmentForGrade(cs.GradeID)
	return &StudentContext{
		UnitID:         cs.UnitID,
		ShiftID:        cs.ShiftID,
		GradeID:        cs.GradeID,
		ClassSectionID: cs.ClassSectionID,
		ClassName:      cs.Name,
		Segment:        segment,
		Subject:        subject,
	}
}

// EnrollmentContext 从注册记录构造匹配上下文。
// 优先使用班级上的规范化 ID；班级缺失时回落到注册记录的
// 历史遗留自由文本字段，由解析器归一化（解析失败原样保留）。
func (m *EventMatcher) EnrollmentContext(enr *model.Enrollment, subject string) *StudentContext {
	if enr.ClassSection != nil {
		sctx := m.ClassContext(enr.ClassSection, subject)
		return sctx
	}

	unitID := enr.LegacyUnit
	if id, ok := m.resolver.ResolveUnit(enr.LegacyUnit); ok {
		unitID = id
	}
	shiftID := enr.LegacyShift
	if id, ok := m.resolver.ResolveShift(enr.LegacyShift); ok {
		shiftID = id
	}
	gradeID := enr.LegacyGrade
	if id, ok := m.resolver.ResolveGrade(enr.LegacyGrade); ok {
		gradeID = id
	}
	segment, _ := m.resolver.SegmentForGrade(gradeID)

	return &StudentContext{
		UnitID:         unitID,
		ShiftID:        shiftID,
		GradeID:        gradeID,
		ClassSectionID: enr.ClassSectionID,
		Segment:        segment,
		Subject:        subject,
	}
}
