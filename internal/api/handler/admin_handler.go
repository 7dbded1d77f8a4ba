package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/dto"
	"course-catalog/internal/service"
	"course-catalog/pkg/response"
)

// AdminHandler 管理端 HTTP 处理器（BasicAuth 之后）
type AdminHandler struct {
	courseSvc service.CourseService
	exportSvc service.ExportService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(courseSvc service.CourseService, exportSvc service.ExportService) *AdminHandler {
	return &AdminHandler{courseSvc: courseSvc, exportSvc: exportSvc}
}

// GetCurrentAdmin 当前管理员
// GET /admin/users/me
func (h *AdminHandler) GetCurrentAdmin(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	response.OK(c, dto.CurrentAdminResponse{Username: username})
}

// AddCourse 添加课程
// POST /admin/add-course/:id
func (h *AdminHandler) AddCourse(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !bindCourseRequest(c, &req) {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), id, &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// DeleteCourse 删除课程
// DELETE /admin/delete-course/:id
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Delete(c.Request.Context(), id)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// GetEnrollment 课程选课情况
// GET /admin/get-course/:id/enrollment
func (h *AdminHandler) GetEnrollment(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateCourse 更新课程（整体替换）
// PUT /admin/course/:id/update
func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !bindCourseRequest(c, &req) {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// ExportCourses 导出课程目录
// GET /admin/export/courses
func (h *AdminHandler) ExportCourses(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCatalog(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxType, buf.Bytes())
}
