package service

import (
	"time"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── 实际授课课时计算 ──

// TaughtHours 计算闭区间 [startDate, endDate] 内某学科对给定上下文
// 的实际授课小时总数。
//
// 前置检查区分两种"零"：
//   - 班级完全没有配置课表 → (0, estimated=true)："不知道，按零处理，
//     但标记为不可靠"，供对账工具区别呈现；
//   - 课表存在但该学科从未出现 → (0, estimated=false)：确定未排课。
//
// 其余情况逐日合成上课日判定与课时聚合。每个日期独立求值，
// 无跨日状态，结果为各日课时之和。
func (m *EventMatcher) TaughtHours(startDate, endDate time.Time, subject string, sctx *StudentContext, entries []model.ScheduleEntry, events []model.CalendarEvent) (hours float64, estimated bool) {
	var classEntries []model.ScheduleEntry
	for i := range entries {
		if entries[i].ClassSectionID == sctx.ClassSectionID {
			classEntries = append(classEntries, entries[i])
		}
	}
	if len(classEntries) == 0 {
		return 0, true
	}

	foldedSubject := Fold(subject)
	scheduled := false
	for i := range classEntries {
		for j := range classEntries[i].Slots {
			if Fold(classEntries[i].Slots[j].Subject) == foldedSubject {
				scheduled = true
				break
			}
		}
		if scheduled {
			break
		}
	}
	if !scheduled {
		return 0, false
	}

	start := model.DateOnly(startDate)
	end := model.DateOnly(endDate)
	total := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		isDay, effectiveWeekday := m.ClassifySchoolDay(d, sctx, events)
		if !isDay {
			continue
		}
		total += SubjectHours(sctx, effectiveWeekday, subject, classEntries)
	}

	return total, false
}
