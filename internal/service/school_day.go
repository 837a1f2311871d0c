package service

import (
	"time"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/model"
)

// ── 上课日判定 ──

// ClassifySchoolDay 判定某个日历日期对给定学生上下文是否实际上课，
// 以及按哪个星期的课表上课（生效星期）。
//
// 规则：
//  1. 收集覆盖该日期且适用于上下文的事件；
//  2. 其中存在停课类事件（假日/假期/休整）即不上课，直接返回；
//  3. 周六/周日仅在有补课/调课类事件覆盖时上课；
//  4. 补课/调课事件携带 SubstituteDayOfWeek 时，生效星期取其值
//     （工作日同样适用，如"今天按周一课表上课"）；
//  5. 否则生效星期 = 实际星期。
//
// 生效星期必须回传，供课时聚合器选取正确的课表。
func (m *EventMatcher) ClassifySchoolDay(date time.Time, sctx *StudentContext, events []model.CalendarEvent) (isDay bool, effectiveWeekday int) {
	actualWeekday := int(date.Weekday()) // 0-6，0 = 周日

	var covering []*model.CalendarEvent
	for i := range events {
		ev := &events[i]
		if ev.CoversDate(date) && m.Applies(ev, sctx) {
			covering = append(covering, ev)
		}
	}

	// 停课类事件优先级最高
	for _, ev := range covering {
		if ev.IsHolidayKind() {
			return false, actualWeekday
		}
	}

	// 优先取携带 SubstituteDayOfWeek 的补课/调课事件，
	// 多个事件并存时不丢失生效星期
	var extraDay *model.CalendarEvent
	for _, ev := range covering {
		if !ev.IsExtraDayKind() {
			continue
		}
		if ev.SubstituteDayOfWeek != nil {
			extraDay = ev
			break
		}
		if extraDay == nil {
			extraDay = ev
		}
	}

	// 周末仅在补课/调课事件覆盖时上课
	if actualWeekday == 0 || actualWeekday == 6 {
		if extraDay == nil {
			return false, actualWeekday
		}
	}

	effectiveWeekday = actualWeekday
	if extraDay != nil && extraDay.SubstituteDayOfWeek != nil {
		effectiveWeekday = *extraDay.SubstituteDayOfWeek
	}

	return true, effectiveWeekday
}

// ── 周课表课时聚合 ──

// defaultSlotHours 时段时长缺省值（小时）
// 起止时间缺失、格式错误或非正时长时使用
const defaultSlotHours = 1.0

// SubjectHours 汇总给定星期、给定学科在适用课表条目中的授课小时数
// 学科名按不区分大小写/变音符比较；无匹配时段时返回 0
func SubjectHours(sctx *StudentContext, weekday int, subject string, entries []model.ScheduleEntry) float64 {
	foldedSubject := Fold(subject)
	total := 0.0
	for i := range entries {
		entry := &entries[i]
		if entry.ClassSectionID != sctx.ClassSectionID || entry.DayOfWeek != weekday {
			continue
		}
		for j := range entry.Slots {
			slot := &entry.Slots[j]
			if Fold(slot.Subject) != foldedSubject {
				continue
			}
			total += slotHours(slot.StartTime, slot.EndTime)
		}
	}
	return total
}

// slotHours 挂钟时间差（小时）
func slotHours(startTime, endTime string) float64 {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return defaultSlotHours
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return defaultSlotHours
	}
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return defaultSlotHours
	}
	return hours
}
