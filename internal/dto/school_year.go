package dto

// ── 学年模块 DTO ──

// GradingPeriodInput 创建学年时的评分期定义
type GradingPeriodInput struct {
	Number    int    `json:"number"     binding:"required,min=1,max=4"`
	StartDate string `json:"start_date" binding:"required"` // "2026-02-02"
	EndDate   string `json:"end_date"   binding:"required"`
}

// CreateSchoolYearRequest 创建学年请求
type CreateSchoolYearRequest struct {
	Year      int                  `json:"year"       binding:"required,min=2000,max=2100"`
	StartDate string               `json:"start_date" binding:"required"`
	EndDate   string               `json:"end_date"   binding:"required"`
	Periods   []GradingPeriodInput `json:"periods"    binding:"required,len=4,dive"`
}

// GradingPeriodResponse 评分期响应
type GradingPeriodResponse struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SchoolUnitResponse 校区信息响应（前端填充校历事件 target_units 选择器）
type SchoolUnitResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// SchoolYearResponse 学年信息响应
type SchoolYearResponse struct {
	ID        string                  `json:"id"`
	Year      int                     `json:"year"`
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	IsActive  bool                    `json:"is_active"`
	Periods   []GradingPeriodResponse `json:"periods,omitempty"`
	CreatedAt string                  `json:"created_at"`
	UpdatedAt string                  `json:"updated_at"`
}
