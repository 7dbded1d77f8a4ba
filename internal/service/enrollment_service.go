package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"course-catalog/internal/dto"
	"course-catalog/internal/model"
	"course-catalog/internal/repository"
	pkgerrors "course-catalog/pkg/errors"
)

// ── 选课模块业务错误 ──

var (
	ErrCourseFull = errors.New("课程已满")
)

// EnrollmentService 选课业务接口
//
// 选课是修改 current_enr 的唯一途径；判断容量与人数加一在同一把写锁内完成，
// 并发选课不会超过 max_enr。
type EnrollmentService interface {
	Enroll(ctx context.Context, courseID int) (*dto.EnrollResponse, error)
	Unenroll(ctx context.Context, courseID int) error
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── Enroll ──────────────────────

func (s *enrollmentService) Enroll(ctx context.Context, courseID int) (*dto.EnrollResponse, error) {
	course, err := s.repo.Course.Mutate(ctx, courseID, func(c *model.Course) error {
		if !c.Available() {
			return ErrCourseFull
		}
		c.CurrentEnr++
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrRecordNotFound):
			return nil, ErrCourseNotFound
		case errors.Is(err, ErrCourseFull):
			return nil, ErrCourseFull
		}
		s.logger.Error("选课失败", zap.Int("course_id", courseID), zap.Error(err))
		return nil, err
	}

	enrolled := course.EnrollmentFraction()
	s.logger.Info("选课成功", zap.Int("course_id", courseID), zap.String("enrolled", enrolled))
	return &dto.EnrollResponse{Enrolled: enrolled}, nil
}

// ────────────────────── Unenroll ──────────────────────

// Unenroll 目前只校验课程存在，不修改人数。
// TODO: 引入学生身份与选课记录后再实现退课，否则无法判断调用方是否选过这门课。
func (s *enrollmentService) Unenroll(ctx context.Context, courseID int) error {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Int("course_id", courseID), zap.Error(err))
		return err
	}
	return nil
}
