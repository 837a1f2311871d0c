package dto

// ── 成绩模块 DTO ──

// UpsertBimesterGradeRequest 录入/更新双月期成绩请求
// Score / MakeupScore 传 null 表示清除该项。
type UpsertBimesterGradeRequest struct {
	Subject      string   `json:"subject"       binding:"required,min=1,max=80"`
	Bimester     int      `json:"bimester"      binding:"required,min=1,max=4"`
	Score        *float64 `json:"score"         binding:"omitempty,min=0,max=10"`
	MakeupScore  *float64 `json:"makeup_score"  binding:"omitempty,min=0,max=10"`
	AbsenceHours *float64 `json:"absence_hours" binding:"omitempty,min=0"`
}

// SignOffRequest 成绩签核请求
// 字段传 null 表示撤回签核标记（回到"未表态即放行"状态）。
type SignOffRequest struct {
	Subject         string `json:"subject"  binding:"required,min=1,max=80"`
	Bimester        int    `json:"bimester" binding:"required,min=1,max=4"`
	ScoreSignedOff  *bool  `json:"score_signed_off"`
	MakeupSignedOff *bool  `json:"makeup_signed_off"`
}

// FinalMakeupRequest 期末补考成绩请求
type FinalMakeupRequest struct {
	Subject string   `json:"subject" binding:"required,min=1,max=80"`
	Score   *float64 `json:"score"   binding:"omitempty,min=0,max=10"`
}

// BimesterGradeResponse 双月期成绩响应
// Media 为 null 表示未录入（UNGRADED）。
type BimesterGradeResponse struct {
	Bimester        int      `json:"bimester"`
	Score           *float64 `json:"score,omitempty"`
	MakeupScore     *float64 `json:"makeup_score,omitempty"`
	Media           *float64 `json:"media"`
	AbsenceHours    float64  `json:"absence_hours"`
	ScoreSignedOff  *bool    `json:"score_signed_off,omitempty"`
	MakeupSignedOff *bool    `json:"makeup_signed_off,omitempty"`
}

// SubjectGradesResponse 单学科成绩汇总响应
type SubjectGradesResponse struct {
	Subject          string                  `json:"subject"`
	Bimesters        []BimesterGradeResponse `json:"bimesters"`
	AnnualMedia      *float64                `json:"annual_media"`
	FinalMedia       *float64                `json:"final_media,omitempty"`
	FinalMakeupScore *float64                `json:"final_makeup_score,omitempty"`
	Status           string                  `json:"status"`
	Approved         bool                    `json:"approved"`
}

// ReportCardResponse 成绩单响应（注册维度）
type ReportCardResponse struct {
	EnrollmentID string                  `json:"enrollment_id"`
	StudentName  string                  `json:"student_name"`
	ClassName    string                  `json:"class_name"`
	Subjects     []SubjectGradesResponse `json:"subjects"`
}
