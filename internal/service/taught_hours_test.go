package service

import (
	"testing"
	"time"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

func TestTaughtHours_NoTimetableIsEstimated(t *testing.T) {
	m := testMatcher()
	start, end := dateRange("2025-04-21", "2025-04-25")

	// 班级完全没有课表 → (0, estimated=true)
	hours, estimated := m.TaughtHours(start, end, "Matemática", testStudentContext(), nil, nil)
	if hours != 0 || !estimated {
		t.Errorf("无课表期望 (0, true), 实际 (%f, %v)", hours, estimated)
	}

	// 课表只属于其他班级 → 同样视为无课表
	otherClass := []model.ScheduleEntry{{ClassSectionID: "class-2", DayOfWeek: 1,
		Slots: []model.SubjectSlot{{Subject: "Matemática", StartTime: "07:30", EndTime: "08:20"}}}}
	hours, estimated = m.TaughtHours(start, end, "Matemática", testStudentContext(), otherClass, nil)
	if hours != 0 || !estimated {
		t.Errorf("其他班级课表期望 (0, true), 实际 (%f, %v)", hours, estimated)
	}
}

func TestTaughtHours_SubjectNotScheduledIsDefinitive(t *testing.T) {
	m := testMatcher()
	start, end := dateRange("2025-04-21", "2025-04-25")

	// 课表存在但该学科从未出现 → (0, estimated=false)："确定未排课"
	hours, estimated := m.TaughtHours(start, end, "Geografia", testStudentContext(), testScheduleEntries(), nil)
	if hours != 0 || estimated {
		t.Errorf("学科未排课期望 (0, false), 实际 (%f, %v)", hours, estimated)
	}
}

func TestTaughtHours_SumsInstructionalDays(t *testing.T) {
	m := testMatcher()
	// 2025-04-21（周一）~ 2025-04-27（周日）：
	// 周一 2 节数学（100 分钟）+ 周二 1 节（90 分钟），周末无补课事件不计
	start, end := dateRange("2025-04-21", "2025-04-27")

	hours, estimated := m.TaughtHours(start, end, "Matemática", testStudentContext(), testScheduleEntries(), nil)
	expected := 100.0/60 + 1.5
	if estimated {
		t.Error("课表存在时 estimated 应为 false")
	}
	if diff := hours - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("课时期望 %f, 实际 %f", expected, hours)
	}
}

func TestTaughtHours_HolidaySuppressesDay(t *testing.T) {
	m := testMatcher()
	start, end := dateRange("2025-04-21", "2025-04-27")

	// 周一为假日 → 只剩周二的 1.5 小时
	monday := time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)
	events := []model.CalendarEvent{holidayEvent(monday, monday)}

	hours, _ := m.TaughtHours(start, end, "Matemática", testStudentContext(), testScheduleEntries(), events)
	if diff := hours - 1.5; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("假日抑制后课时期望 1.5, 实际 %f", hours)
	}
}

func TestTaughtHours_SaturdayWithMondayTimetable(t *testing.T) {
	m := testMatcher()
	// 仅周六一天，调课事件指定按周一课表 → 计入周一的 100 分钟数学
	events := []model.CalendarEvent{
		{Kind: model.EventKindSchoolDay, StartDate: saturday, EndDate: saturday},
	}
	sub := 1
	events[0].SubstituteDayOfWeek = &sub

	hours, estimated := m.TaughtHours(saturday, saturday, "Matemática", testStudentContext(), testScheduleEntries(), events)
	expected := 100.0 / 60
	if estimated {
		t.Error("estimated 应为 false")
	}
	if diff := hours - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("周六按周一课表课时期望 %f, 实际 %f", expected, hours)
	}

	// 无替代星期的周六补课：周六课表为空 → 0 小时但非 estimated
	events[0].SubstituteDayOfWeek = nil
	hours, estimated = m.TaughtHours(saturday, saturday, "Matemática", testStudentContext(), testScheduleEntries(), events)
	if hours != 0 || estimated {
		t.Errorf("周六自身课表为空期望 (0, false), 实际 (%f, %v)", hours, estimated)
	}
}

func TestTaughtHours_InvertedRangeYieldsZero(t *testing.T) {
	m := testMatcher()
	start, end := dateRange("2025-04-25", "2025-04-21")

	hours, estimated := m.TaughtHours(start, end, "Matemática", testStudentContext(), testScheduleEntries(), nil)
	if hours != 0 || estimated {
		t.Errorf("倒置区间期望 (0, false), 实际 (%f, %v)", hours, estimated)
	}
}
