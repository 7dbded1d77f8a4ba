package handler

import (
	"github.com/gin-gonic/gin"

	"course-catalog/internal/service"
	"course-catalog/pkg/response"
)

// EnrollmentHandler 选课 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Enroll 选课
// PUT /class/:id/enroll
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	result, err := h.enrollmentSvc.Enroll(c.Request.Context(), id)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// Unenroll 退课（目前为空操作）
// DELETE /class/:id/enroll
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	id, ok := MustGetCourseID(c)
	if !ok {
		return
	}

	if err := h.enrollmentSvc.Unenroll(c.Request.Context(), id); err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}
