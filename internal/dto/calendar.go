package dto

// ── 校历模块 DTO ──

// CreateCalendarEventRequest 创建校历事件请求
// 六个 target_* 过滤器均可省略；省略即对该维度全部适用。
// 过滤器的值允许历史遗留自由文本（如 "Manhã"），匹配时由解析器归一化。
type CreateCalendarEventRequest struct {
	Kind      string `json:"kind"       binding:"required,oneof=national_holiday state_holiday municipal_holiday vacation recess school_day substitution exam meeting event"`
	Title     string `json:"title"      binding:"required,min=1,max=160"`
	StartDate string `json:"start_date" binding:"required"` // "2026-04-21"
	EndDate   string `json:"end_date"   binding:"required"`

	TargetUnits    []string `json:"target_units"    binding:"omitempty,max=50"`
	TargetShifts   []string `json:"target_shifts"   binding:"omitempty,max=10"`
	TargetClasses  []string `json:"target_classes"  binding:"omitempty,max=200"`
	TargetGrades   []string `json:"target_grades"   binding:"omitempty,max=50"`
	TargetSegments []string `json:"target_segments" binding:"omitempty,max=10"`
	TargetSubjects []string `json:"target_subjects" binding:"omitempty,max=50"`

	SubstituteDayOfWeek *int `json:"substitute_day_of_week" binding:"omitempty,min=0,max=6"`
}

// UpdateCalendarEventRequest 更新校历事件请求
type UpdateCalendarEventRequest struct {
	Kind      *string `json:"kind"       binding:"omitempty,oneof=national_holiday state_holiday municipal_holiday vacation recess school_day substitution exam meeting event"`
	Title     *string `json:"title"      binding:"omitempty,min=1,max=160"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`

	TargetUnits    *[]string `json:"target_units"`
	TargetShifts   *[]string `json:"target_shifts"`
	TargetClasses  *[]string `json:"target_classes"`
	TargetGrades   *[]string `json:"target_grades"`
	TargetSegments *[]string `json:"target_segments"`
	TargetSubjects *[]string `json:"target_subjects"`

	SubstituteDayOfWeek *int `json:"substitute_day_of_week" binding:"omitempty,min=0,max=6"`
}

// CalendarEventResponse 校历事件响应
type CalendarEventResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TargetUnits    []string `json:"target_units,omitempty"`
	TargetShifts   []string `json:"target_shifts,omitempty"`
	TargetClasses  []string `json:"target_classes,omitempty"`
	TargetGrades   []string `json:"target_grades,omitempty"`
	TargetSegments []string `json:"target_segments,omitempty"`
	TargetSubjects []string `json:"target_subjects,omitempty"`

	SubstituteDayOfWeek *int   `json:"substitute_day_of_week,omitempty"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}

// ── ICS 假日导入 ──

// ImportHolidaysICSRequest ICS 假日导入请求（URL 方式）
// 文件方式走 multipart 上传，字段同名。
type ImportHolidaysICSRequest struct {
	URL  string `json:"url"  binding:"omitempty,url"`
	Kind string `json:"kind" binding:"omitempty,oneof=national_holiday state_holiday municipal_holiday"`
}

// ImportHolidaysICSResponse ICS 假日导入响应
type ImportHolidaysICSResponse struct {
	ImportedCount int                     `json:"imported_count"`
	SkippedCount  int                     `json:"skipped_count"`
	Events        []CalendarEventResponse `json:"events"`
}

// ── 上课日判定 ──

// CheckSchoolDayResponse 上课日判定响应
type CheckSchoolDayResponse struct {
	Date             string   `json:"date"`
	IsSchoolDay      bool     `json:"is_school_day"`
	EffectiveWeekday int      `json:"effective_weekday"` // 0-6，0 = 周日
	MatchedEvents    []string `json:"matched_events,omitempty"`
}
