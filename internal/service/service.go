package service

import (
	"go.uber.org/zap"

	"course-catalog/config"
	"course-catalog/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Course     CourseService
	Enrollment EnrollmentService
	Auth       Authenticator
	Export     ExportService
	Calendar   CalendarService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) (*Service, error) {
	auth, err := NewStaticAuthenticator(&cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	calendar, err := NewCalendarService(&cfg.Calendar, repo, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		Course:     NewCourseService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Auth:       auth,
		Export:     NewExportService(repo, logger),
		Calendar:   calendar,
	}, nil
}
