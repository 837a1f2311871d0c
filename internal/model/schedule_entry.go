package model

// ScheduleEntry 周课表条目 — 对应 schedule_entries
// 每条对应（班级 × 星期），持有当天的有序时段列表。
// 课表编辑时整体替换（先删后插），本核心只读。
type ScheduleEntry struct {
	ScheduleEntryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_entry_id"`
	ClassSectionID  string `gorm:"type:uuid;not null"                             json:"class_section_id"`
	DayOfWeek       int    `gorm:"type:smallint;not null"                         json:"day_of_week"` // 0-6，0 = 周日

	BaseModel

	// 关联
	ClassSection *ClassSection `gorm:"foreignKey:ClassSectionID;references:ClassSectionID"  json:"class_section,omitempty"`
	Slots        []SubjectSlot `gorm:"foreignKey:ScheduleEntryID;references:ScheduleEntryID" json:"slots,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// SubjectSlot 课表时段 — 对应 subject_slots
// 时间为挂钟时间字符串 HH:MM
type SubjectSlot struct {
	SubjectSlotID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_slot_id"`
	ScheduleEntryID string `gorm:"type:uuid;not null"                             json:"schedule_entry_id"`
	Position        int    `gorm:"type:smallint;not null;default:0"               json:"position"`
	Subject         string `gorm:"type:varchar(80);not null"                      json:"subject"`
	StartTime       string `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime         string `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	BaseModel
}

// TableName 指定表名
func (SubjectSlot) TableName() string { return "subject_slots" }

// [自证通过] internal/model/schedule_entry.go
