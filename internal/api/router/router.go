package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-catalog/config"
	"course-catalog/internal/api/handler"
	"course-catalog/internal/api/middleware"
	"course-catalog/internal/service"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时管理端不限流
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	auth service.Authenticator,
	limiter middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 根路径与健康检查 ──
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello world"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 课程查询（无需认证）──
	course := r.Group("/course")
	{
		course.GET("/:id", h.Course.GetCourse)
		course.GET("/:id/time", h.Course.GetCourseTime)
		course.GET("/:id/calendar.ics", h.Course.GetCourseCalendar)
	}
	r.GET("/course-name", h.Course.FindByName)
	r.GET("/list-courses", h.Course.ListCourses)
	r.GET("/get-prof-courses/:prof", h.Course.GetProfessorCourses)

	// ── 选课 ──
	class := r.Group("/class")
	{
		class.PUT("/:id/enroll", h.Enrollment.Enroll)
		class.DELETE("/:id/enroll", h.Enrollment.Unenroll)
	}

	// ── 管理端（限流 + Basic 认证）──
	// 限流在认证之前，认证失败的请求同样计数
	admin := r.Group("/admin")
	admin.Use(middleware.RateLimit(limiter, cfg.RateLimit.AdminLimit, cfg.RateLimit.AdminWindow))
	admin.Use(middleware.BasicAuth(auth, cfg.Auth.Realm))
	{
		admin.GET("/users/me", h.Admin.GetCurrentAdmin)
		admin.POST("/add-course/:id", h.Admin.AddCourse)
		admin.DELETE("/delete-course/:id", h.Admin.DeleteCourse)
		admin.GET("/get-course/:id/enrollment", h.Admin.GetEnrollment)
		admin.PUT("/course/:id/update", h.Admin.UpdateCourse)
		admin.GET("/export/courses", h.Admin.ExportCourses)
	}

	return r
}
