package dto

// ── 课表模块 DTO ──

// SubjectSlotInput 课表时段输入
type SubjectSlotInput struct {
	Subject   string `json:"subject"    binding:"required,min=1,max=80"`
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time"   binding:"required"` // HH:MM
}

// ScheduleDayInput 单日课表输入
type ScheduleDayInput struct {
	DayOfWeek int                `json:"day_of_week" binding:"min=0,max=6"` // 0 = 周日
	Slots     []SubjectSlotInput `json:"slots"       binding:"required,min=1,dive"`
}

// ReplaceScheduleRequest 整体替换班级课表请求
// 课表编辑总是整班整周提交，先删后插。
type ReplaceScheduleRequest struct {
	Days []ScheduleDayInput `json:"days" binding:"required,min=1,max=7,dive"`
}

// SubjectSlotResponse 课表时段响应
type SubjectSlotResponse struct {
	ID        string `json:"id"`
	Position  int    `json:"position"`
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ScheduleDayResponse 单日课表响应
type ScheduleDayResponse struct {
	ID        string                `json:"id"`
	DayOfWeek int                   `json:"day_of_week"`
	Slots     []SubjectSlotResponse `json:"slots"`
}

// ScheduleResponse 班级周课表响应
type ScheduleResponse struct {
	ClassSectionID string                `json:"class_section_id"`
	Days           []ScheduleDayResponse `json:"days"`
}
