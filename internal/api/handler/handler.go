package handler

import "course-catalog/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course     *CourseHandler
	Enrollment *EnrollmentHandler
	Admin      *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:     NewCourseHandler(svc.Course, svc.Calendar),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Admin:      NewAdminHandler(svc.Course, svc.Export),
	}
}
