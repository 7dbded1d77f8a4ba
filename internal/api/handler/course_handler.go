package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/dto"
	"course-catalog/internal/service"
	"course-catalog/pkg/response"
)

// CourseHandler 课程查询 HTTP 处理器（无需认证）
type CourseHandler struct {
	courseSvc   service.CourseService
	calendarSvc service.CalendarService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService, calendarSvc service.CalendarService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc, calendarSvc: calendarSvc}
}

// GetCourse 获取课程详情
// GET /course/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Get(c.Request.Context(), id)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// GetCourseTime 课程上课时间
// GET /course/:id/time
// TODO: 返回格式尚未确定（原始时间段还是按周展开的日程），确定前保持 501。
func (h *CourseHandler) GetCourseTime(c *gin.Context) {
	if _, ok := MustGetCourseID(c); !ok {
		return
	}
	response.NotImplemented(c, 10006, "接口尚未实现")
}

// GetCourseCalendar 导出课程日历
// GET /course/:id/calendar.ics
func (h *CourseHandler) GetCourseCalendar(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	data, filename, err := h.calendarSvc.CourseCalendar(c.Request.Context(), id)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// FindByName 按课程名称查询
// GET /course-name?name=
func (h *CourseHandler) FindByName(c *gin.Context) {
	var req dto.CourseNameRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	course, err := h.courseSvc.FindByName(c.Request.Context(), req.Name)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// ListCourses 课程列表
// GET /list-courses?available=
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), req.Available)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, dto.NewCourseMap(courses))
}

// GetProfessorCourses 教师的课程
// GET /get-prof-courses/:prof?available=
func (h *CourseHandler) GetProfessorCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	courses, err := h.courseSvc.FindByProfessor(c.Request.Context(), c.Param("prof"), req.Available)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, dto.NewCourseMap(courses))
}
