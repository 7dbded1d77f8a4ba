package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"course-catalog/internal/api/middleware"
	"course-catalog/internal/dto"
	"course-catalog/internal/service"
	"course-catalog/pkg/response"
)

// MustGetUsername 从 Gin 上下文中安全提取管理员用户名。
// 如果 BasicAuth 中间件未注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextKeyUsername)
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetCourseID 解析路径参数 :id，要求为正整数；失败时写入 400 响应。
func MustGetCourseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.BadRequest(c, 10001, "课程ID必须为正整数")
		return 0, false
	}
	return id, true
}

// bindCourseRequest 绑定课程请求体；请求体超限返回 413，其余绑定失败返回 400
func bindCourseRequest(c *gin.Context, req *dto.CourseRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return false
	}
	return true
}

// handleCourseError 统一处理课程、选课模块业务错误
func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 12001, "课程不存在")
	case errors.Is(err, service.ErrCourseExists):
		response.Conflict(c, 12002, "课程已存在")
	case errors.Is(err, service.ErrCourseFull):
		response.Forbidden(c, 12003, "课程已满")
	case errors.Is(err, service.ErrInvalidCourse):
		response.ErrorWithDetails(c, http.StatusBadRequest, 12004, "课程信息不合法", err.Error())
	case errors.Is(err, service.ErrProfessorNoCourses):
		response.NotFound(c, 12005, "未找到该教师的课程")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
