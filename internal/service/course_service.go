package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"course-catalog/internal/dto"
	"course-catalog/internal/model"
	"course-catalog/internal/repository"
	pkgerrors "course-catalog/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrCourseExists       = errors.New("课程已存在")
	ErrInvalidCourse      = model.ErrInvalidCourse
	ErrProfessorNoCourses = errors.New("未找到该教师的课程")
)

// CourseService 课程目录业务接口（增删改查 + 查询）
type CourseService interface {
	Get(ctx context.Context, id int) (*dto.CourseResponse, error)
	Create(ctx context.Context, id int, req *dto.CourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, id int, req *dto.CourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id int) (*dto.CourseResponse, error)
	GetEnrollment(ctx context.Context, id int) (*dto.CourseEnrollmentResponse, error)

	List(ctx context.Context, availableOnly bool) ([]dto.CourseResponse, error)
	FindByName(ctx context.Context, name string) (*dto.CourseResponse, error)
	FindByProfessor(ctx context.Context, professor string, availableOnly bool) ([]dto.CourseResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *courseService) Get(ctx context.Context, id int) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "查询课程失败", id)
	}
	return toCourseResponse(id, course), nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, id int, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Course.Create(ctx, id, course); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrCourseExists
		}
		s.logger.Error("创建课程失败", zap.Int("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程已创建", zap.Int("id", id), zap.String("name", course.Name))
	return toCourseResponse(id, course), nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, id int, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Course.Update(ctx, id, course); err != nil {
		return nil, s.mapRepoError(err, "更新课程失败", id)
	}

	s.logger.Info("课程已更新", zap.Int("id", id))
	return toCourseResponse(id, course), nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id int) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.Delete(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "删除课程失败", id)
	}

	s.logger.Info("课程已删除", zap.Int("id", id), zap.String("name", course.Name))
	return toCourseResponse(id, course), nil
}

// ────────────────────── GetEnrollment ──────────────────────

func (s *courseService) GetEnrollment(ctx context.Context, id int) (*dto.CourseEnrollmentResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "查询选课情况失败", id)
	}

	return &dto.CourseEnrollmentResponse{
		Name:       course.Name,
		CurrentEnr: course.CurrentEnr,
		MaxEnr:     course.MaxEnr,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context, availableOnly bool) ([]dto.CourseResponse, error) {
	entries, err := s.repo.Course.List(ctx, availableOnly)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(entries), nil
}

// ────────────────────── FindByName ──────────────────────

// FindByName 按 ID 升序返回第一个名称完全匹配的课程
func (s *courseService) FindByName(ctx context.Context, name string) (*dto.CourseResponse, error) {
	entries, err := s.repo.Course.List(ctx, false)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	for i := range entries {
		if entries[i].Course.Name == name {
			return toCourseResponse(entries[i].ID, &entries[i].Course), nil
		}
	}
	return nil, ErrCourseNotFound
}

// ────────────────────── FindByProfessor ──────────────────────

func (s *courseService) FindByProfessor(ctx context.Context, professor string, availableOnly bool) ([]dto.CourseResponse, error) {
	entries, err := s.repo.Course.List(ctx, availableOnly)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	matched := make([]model.CourseEntry, 0, len(entries))
	for _, e := range entries {
		if e.Course.Professor == professor {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		return nil, ErrProfessorNoCourses
	}
	return toCourseResponses(matched), nil
}

// ── 内部辅助方法 ──

func (s *courseService) mapRepoError(err error, msg string, id int) error {
	if errors.Is(err, pkgerrors.ErrRecordNotFound) {
		return ErrCourseNotFound
	}
	s.logger.Error(msg, zap.Int("id", id), zap.Error(err))
	return err
}

// courseFromRequest 请求转模型并校验；所有校验错误都满足 errors.Is(err, ErrInvalidCourse)
func courseFromRequest(req *dto.CourseRequest) (*model.Course, error) {
	if req.Time.Start == nil || req.Time.End == nil {
		return nil, fmt.Errorf("%w: start 与 end 不能为空", ErrInvalidCourse)
	}

	course := &model.Course{
		Name:       req.Name,
		Professor:  req.Professor,
		CurrentEnr: req.CurrentEnr,
		MaxEnr:     req.MaxEnr,
		Time: model.TimeSlot{
			Days:  req.Time.Days,
			Start: *req.Time.Start,
			End:   *req.Time.End,
		},
	}
	if err := course.Validate(); err != nil {
		// 课程字段错误已由 model.ErrInvalidCourse 包装，只需补上时间段错误这一层
		if errors.Is(err, ErrInvalidCourse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCourse, err)
	}
	return course, nil
}

func toCourseResponse(id int, c *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:         id,
		Name:       c.Name,
		Professor:  c.Professor,
		CurrentEnr: c.CurrentEnr,
		MaxEnr:     c.MaxEnr,
		Time: dto.TimeSlotResponse{
			Days:  c.Time.Days,
			Start: c.Time.Start,
			End:   c.Time.End,
		},
	}
}

func toCourseResponses(entries []model.CourseEntry) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toCourseResponse(entries[i].ID, &entries[i].Course))
	}
	return result
}
