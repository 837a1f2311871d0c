package dto

// ── 考勤对账模块 DTO ──

// TaughtHoursRequest 授课课时查询请求
type TaughtHoursRequest struct {
	Subject  string `form:"subject"   binding:"required,min=1,max=80"`
	PeriodID string `form:"period_id" binding:"required,uuid"`
}

// TaughtHoursResponse 授课课时响应
// Estimated 为 true 表示该班级没有课表，数值为估算占位而非排课推算。
type TaughtHoursResponse struct {
	ClassSectionID string  `json:"class_section_id"`
	Subject        string  `json:"subject"`
	PeriodID       string  `json:"period_id"`
	Hours          float64 `json:"hours"`
	Estimated      bool    `json:"estimated"`
	FromCache      bool    `json:"from_cache"`
}

// DiscrepancyItem 单个学生的考勤差异条目
type DiscrepancyItem struct {
	EnrollmentID string  `json:"enrollment_id"`
	StudentName  string  `json:"student_name"`
	Subject      string  `json:"subject"`
	AbsenceHours float64 `json:"absence_hours"`
	TaughtHours  float64 `json:"taught_hours"`
	Estimated    bool    `json:"estimated"`
	Reason       string  `json:"reason"` // absence_exceeds_taught / estimated_baseline
}

// DiscrepancyReportResponse 班级考勤差异报告
type DiscrepancyReportResponse struct {
	ClassSectionID string            `json:"class_section_id"`
	Bimester       int               `json:"bimester"`
	Items          []DiscrepancyItem `json:"items"`
}
