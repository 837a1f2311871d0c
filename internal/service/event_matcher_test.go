package service

import (
	"testing"
	"time"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// 测试辅助：8º Ano A 班上午班次学生
func testStudentContext() *StudentContext {
	return &StudentContext{
		UnitID:         "centro",
		ShiftID:        "matutino",
		GradeID:        "ef-8",
		ClassSectionID: "class-1",
		ClassName:      "8º Ano A",
		Segment:        SegmentFundamentalII,
		Subject:        "Matemática",
	}
}

func testMatcher() *EventMatcher {
	r := NewResolver()
	r.RegisterUnit("Unidade Centro", "centro")
	r.RegisterUnit("Unidade Jardim", "jardim")
	return NewEventMatcher(r)
}

func dateRange(start, end string) (time.Time, time.Time) {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return s, e
}

func TestEventMatcher_NoFilters_AppliesUnitWide(t *testing.T) {
	m := testMatcher()
	start, end := dateRange("2025-04-21", "2025-04-21")
	ev := &model.CalendarEvent{Kind: model.EventKindNationalHoliday, StartDate: start, EndDate: end}

	if !m.Applies(ev, testStudentContext()) {
		t.Error("无任何过滤器的事件应全域适用")
	}
}

func TestEventMatcher_ClassFilterIsTerminal(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()
	sctx.ClassName = "8º Ano B"

	// 班级过滤器终局：即使年级本可命中，非目标班级的学生也被排除
	ev := &model.CalendarEvent{
		Kind:          model.EventKindEvent,
		TargetClasses: model.StringArray{"8º Ano A"},
		TargetGrades:  model.StringArray{"8º Ano"},
	}
	if m.Applies(ev, sctx) {
		t.Error("班级过滤器应终局排除非成员，即使年级匹配")
	}

	// 班级命中 → 适用
	sctx.ClassName = "8º ano a" // 大小写/变音符不敏感
	if !m.Applies(ev, sctx) {
		t.Error("班级成员应命中（折叠比较）")
	}
}

func TestEventMatcher_ShiftFilterIsAdditive(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()

	// 班次 + 年级：班次命中后继续评估年级
	ev := &model.CalendarEvent{
		Kind:         model.EventKindEvent,
		TargetShifts: model.StringArray{"Manhã"},
		TargetGrades: model.StringArray{"7º Ano"},
	}
	if m.Applies(ev, sctx) {
		t.Error("班次命中但年级不符时不应适用（班次为叠加过滤器）")
	}

	ev.TargetGrades = model.StringArray{"8º Ano"}
	if !m.Applies(ev, sctx) {
		t.Error("班次与年级均命中时应适用")
	}

	// 班次不符 → 直接排除
	ev.TargetShifts = model.StringArray{"Tarde"}
	if m.Applies(ev, sctx) {
		t.Error("班次不符时应排除")
	}
}

func TestEventMatcher_SubjectFilterIsAdditive(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()

	ev := &model.CalendarEvent{
		Kind:           model.EventKindExam,
		TargetSubjects: model.StringArray{"Matemática"},
	}
	if !m.Applies(ev, sctx) {
		t.Error("学科命中且无终局过滤器时应适用")
	}

	ev.TargetSubjects = model.StringArray{"História"}
	if m.Applies(ev, sctx) {
		t.Error("学科不符时应排除")
	}

	// 上下文未携带学科 → 学科过滤器视为不匹配
	sctx.Subject = ""
	ev.TargetSubjects = model.StringArray{"Matemática"}
	if m.Applies(ev, sctx) {
		t.Error("上下文无学科时学科受限事件不应适用")
	}
}

func TestEventMatcher_GradeFilterIsTerminal(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()

	// 年级终局命中：后面的学段过滤器不再评估
	ev := &model.CalendarEvent{
		Kind:           model.EventKindEvent,
		TargetGrades:   model.StringArray{"8º Ano"},
		TargetSegments: model.StringArray{SegmentMedio}, // 学段不符，但不应被评估
	}
	if !m.Applies(ev, sctx) {
		t.Error("年级命中应终局适用，不再评估学段")
	}
}

func TestEventMatcher_SegmentFilter(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()

	ev := &model.CalendarEvent{
		Kind:           model.EventKindMeeting,
		TargetSegments: model.StringArray{"Fundamental II"},
	}
	if !m.Applies(ev, sctx) {
		t.Error("学段命中应适用")
	}

	ev.TargetSegments = model.StringArray{"Ensino Médio"}
	if m.Applies(ev, sctx) {
		t.Error("学段不符应排除")
	}
}

func TestEventMatcher_UnitGate(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()

	// 校区限制先于一切检查
	ev := &model.CalendarEvent{
		Kind:         model.EventKindMunicipalHoliday,
		TargetUnits:  model.StringArray{"Unidade Jardim"},
		TargetGrades: model.StringArray{"8º Ano"},
	}
	if m.Applies(ev, sctx) {
		t.Error("校区不符时应排除，即使年级匹配")
	}

	// "all" 为校区无关
	ev.TargetUnits = model.StringArray{"all"}
	if !m.Applies(ev, sctx) {
		t.Error("校区无关事件应通过校区门槛")
	}

	// 校区显示名经解析器归一化
	ev.TargetUnits = model.StringArray{"Unidade Centro"}
	if !m.Applies(ev, sctx) {
		t.Error("校区显示名应归一化后命中")
	}
}

func TestEventMatcher_UnresolvedGradeLabelIsSafe(t *testing.T) {
	m := testMatcher()
	sctx := testStudentContext()
	sctx.GradeID = "" // 年级无法解析的学生

	ev := &model.CalendarEvent{
		Kind:         model.EventKindEvent,
		TargetGrades: model.StringArray{"Turma Experimental XYZ"},
	}
	// 不得 panic，判定为不适用即可
	if m.Applies(ev, sctx) {
		t.Error("双方均无法解析且不相等时不应命中")
	}
}
