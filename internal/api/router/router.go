package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/config"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/api/handler"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/internal/api/middleware"
	"github.com/marketingexpan-commits/meuexpansivo3-sub001/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(8 << 20)) // ICS 上传上限 5MB，留余量

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 学年模块
		schoolYears := v1.Group("/school-years")
		{
			schoolYears.GET("", h.SchoolYear.ListSchoolYears)
			schoolYears.GET("/current", h.SchoolYear.GetCurrentSchoolYear)
			schoolYears.GET("/:id", h.SchoolYear.GetSchoolYear)
			schoolYears.POST("", h.SchoolYear.CreateSchoolYear)
			schoolYears.PUT("/:id/activate", h.SchoolYear.ActivateSchoolYear)
		}

		// 校区列表（填充校历事件过滤器选择项）
		v1.GET("/school-units", h.SchoolYear.ListSchoolUnits)

		// 校历模块
		calendarEvents := v1.Group("/calendar-events")
		{
			calendarEvents.GET("", h.Calendar.ListCalendarEvents)
			calendarEvents.GET("/:id", h.Calendar.GetCalendarEvent)
			calendarEvents.POST("", h.Calendar.CreateCalendarEvent)
			calendarEvents.PUT("/:id", h.Calendar.UpdateCalendarEvent)
			calendarEvents.DELETE("/:id", h.Calendar.DeleteCalendarEvent)
			// ICS 导入可触发批量写库，限流保护
			calendarEvents.POST("/import-ics",
				middleware.RateLimit(rdb, 10, time.Minute), h.Calendar.ImportHolidaysICS)
		}

		// 上课日判定
		v1.GET("/school-days/check", h.Calendar.CheckSchoolDay)

		// 班级课表与课时核对模块
		classes := v1.Group("/classes")
		{
			classes.GET("/:id/schedule", h.Schedule.GetSchedule)
			classes.PUT("/:id/schedule", h.Schedule.ReplaceSchedule)
			classes.GET("/:id/taught-hours", h.Attendance.GetTaughtHours)
			classes.GET("/:id/attendance-discrepancies", h.Attendance.GetDiscrepancies)
		}

		// 成绩模块
		enrollments := v1.Group("/enrollments")
		{
			enrollments.GET("/:id/grades", h.Grade.GetReportCard)
			enrollments.PUT("/:id/grades", h.Grade.UpsertBimesterGrade)
			enrollments.PUT("/:id/grades/sign-off", h.Grade.SignOffBimester)
			enrollments.PUT("/:id/grades/final-makeup", h.Grade.SetFinalMakeup)
		}

		// 导出模块
		exports := v1.Group("/exports")
		{
			exports.GET("/report-card/:enrollmentID", h.Export.ExportReportCard)
			exports.GET("/discrepancies/:classID", h.Export.ExportDiscrepancies)
		}
	}

	return r
}
