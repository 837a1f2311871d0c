package service

import (
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// StudentContext 事件匹配与课时计算所需的学生上下文
// 由调用方从注册/班级数据组装；引擎不读取任何全局状态
type StudentContext struct {
	UnitID         string // 规范化校区代码
	ShiftID        string // 规范化班次 ID
	GradeID        string // 规范化年级 ID
	ClassSectionID string // 班级记录主键（课表过滤用）
	ClassName      string // 班级标识，如 "8º Ano A"
	Segment        string // 学段，由年级推导
	Subject        string // 可选：当前关注的学科
}

// ── 范围过滤规则表 ──
//
// "最具体者胜"的匹配顺序以显式规则表表达，而非层层嵌套的条件分支：
//   - terminal 规则（班级/年级/学段）互斥，命中即终局；
//   - additive 规则（班次/学科）叠加在后续命中的门槛之上：
//     不满足即排除，满足则继续向下评估。
// 校区限制独立于上述规则，最先检查。
// 这一混合终局/叠加顺序是刻意保留的历史行为，必须原样复现。

type scopeRule struct {
	terminal bool
	values   func(ev *model.CalendarEvent) model.StringArray
	matches  func(m *EventMatcher, sctx *StudentContext, values model.StringArray) bool
}

var scopeRules = []scopeRule{
	{ // 1. 目标班级（终局）
		terminal: true,
		values:   func(ev *model.CalendarEvent) model.StringArray { return ev.TargetClasses },
		matches: func(_ *EventMatcher, sctx *StudentContext, values model.StringArray) bool {
			return containsFold(values, sctx.ClassName)
		},
	},
	{ // 2. 目标班次（叠加）
		terminal: false,
		values:   func(ev *model.CalendarEvent) model.StringArray { return ev.TargetShifts },
		matches: func(m *EventMatcher, sctx *StudentContext, values model.StringArray) bool {
			return m.containsShift(values, sctx.ShiftID)
		},
	},
	{ // 3. 目标学科（叠加）
		terminal: false,
		values:   func(ev *model.CalendarEvent) model.StringArray { return ev.TargetSubjects },
		matches: func(_ *EventMatcher, sctx *StudentContext, values model.StringArray) bool {
			return containsFold(values, sctx.Subject)
		},
	},
	{ // 4. 目标年级（终局）
		terminal: true,
		values:   func(ev *model.CalendarEvent) model.StringArray { return ev.TargetGrades },
		matches: func(m *EventMatcher, sctx *StudentContext, values model.StringArray) bool {
			return m.containsGrade(values, sctx.GradeID)
		},
	},
	{ // 5. 目标学段（终局）
		terminal: true,
		values:   func(ev *model.CalendarEvent) model.StringArray { return ev.TargetSegments },
		matches: func(_ *EventMatcher, sctx *StudentContext, values model.StringArray) bool {
			return containsFold(values, sctx.Segment)
		},
	},
}

// EventMatcher 校历事件适用性匹配器
type EventMatcher struct {
	resolver *Resolver
}

// NewEventMatcher 创建匹配器
func NewEventMatcher(resolver *Resolver) *EventMatcher {
	return &EventMatcher{resolver: resolver}
}

// Applies 判定事件是否适用于给定学生上下文
func (m *EventMatcher) Applies(ev *model.CalendarEvent, sctx *StudentContext) bool {
	// 校区门槛：事件带校区限制时，学生校区必须在列，或事件为校区无关（"all"）
	if len(ev.TargetUnits) > 0 {
		if !m.containsUnit(ev.TargetUnits, sctx.UnitID) {
			return false
		}
	}

	for _, rule := range scopeRules {
		values := rule.values(ev)
		if len(values) == 0 {
			continue
		}
		matched := rule.matches(m, sctx, values)
		if rule.terminal {
			return matched
		}
		if !matched {
			return false
		}
	}

	// 无任何范围过滤器（或仅通过叠加过滤器）：事件全域适用
	return true
}

// containsFold 折叠比较的成员判定
func containsFold(values model.StringArray, target string) bool {
	if target == "" {
		return false
	}
	folded := Fold(target)
	for _, v := range values {
		if Fold(v) == folded {
			return true
		}
	}
	return false
}

// containsUnit 校区成员判定：列表值先经解析器归一化再比较
func (m *EventMatcher) containsUnit(values model.StringArray, unitID string) bool {
	for _, v := range values {
		if id, ok := m.resolver.ResolveUnit(v); ok {
			if id == "all" || id == unitID {
				return true
			}
			continue
		}
		if Fold(v) == "all" || Fold(v) == Fold(unitID) {
			return true
		}
	}
	return false
}

// containsShift 班次成员判定：列表值先经解析器归一化再比较
func (m *EventMatcher) containsShift(values model.StringArray, shiftID string) bool {
	for _, v := range values {
		if id, ok := m.resolver.ResolveShift(v); ok {
			if id == shiftID {
				return true
			}
			continue
		}
		if Fold(v) == Fold(shiftID) {
			return true
		}
	}
	return false
}

// containsGrade 年级成员判定：两侧都归一化为规范化 ID 后比较，
// 解析失败时退化为折叠字符串比较
func (m *EventMatcher) containsGrade(values model.StringArray, gradeID string) bool {
	for _, v := range values {
		if id, ok := m.resolver.ResolveGrade(v); ok {
			if id == gradeID {
				return true
			}
			continue
		}
		if Fold(v) == Fold(gradeID) {
			return true
		}
	}
	return false
}
