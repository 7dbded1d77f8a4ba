package repository

import (
	"context"
	"sort"
	"sync"

	"course-catalog/internal/model"
	pkgerrors "course-catalog/pkg/errors"
)

// CourseRepository 课程目录数据访问接口
// 所有方法返回副本，调用方修改返回值不会影响目录
type CourseRepository interface {
	Create(ctx context.Context, id int, course *model.Course) error
	GetByID(ctx context.Context, id int) (*model.Course, error)
	List(ctx context.Context, availableOnly bool) ([]model.CourseEntry, error)
	Update(ctx context.Context, id int, course *model.Course) error
	Delete(ctx context.Context, id int) (*model.Course, error)
	// Mutate 在写锁内对记录执行 fn，fn 返回 nil 时才提交修改
	Mutate(ctx context.Context, id int, fn func(c *model.Course) error) (*model.Course, error)
}

type memoryCourseRepo struct {
	mu      sync.RWMutex
	courses map[int]model.Course
}

// NewMemoryCourseRepo 创建内存版 CourseRepository
func NewMemoryCourseRepo(seed []model.CourseEntry) CourseRepository {
	r := &memoryCourseRepo{courses: make(map[int]model.Course, len(seed))}
	for _, e := range seed {
		r.courses[e.ID] = e.Course
	}
	return r
}

func (r *memoryCourseRepo) Create(ctx context.Context, id int, course *model.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; ok {
		return pkgerrors.ErrDuplicateKey
	}
	r.courses[id] = *course
	return nil
}

func (r *memoryCourseRepo) GetByID(ctx context.Context, id int) (*model.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, pkgerrors.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memoryCourseRepo) List(ctx context.Context, availableOnly bool) ([]model.CourseEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]model.CourseEntry, 0, len(r.courses))
	for id, c := range r.courses {
		if availableOnly && !c.Available() {
			continue
		}
		entries = append(entries, model.CourseEntry{ID: id, Course: c})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (r *memoryCourseRepo) Update(ctx context.Context, id int, course *model.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return pkgerrors.ErrRecordNotFound
	}
	r.courses[id] = *course
	return nil
}

func (r *memoryCourseRepo) Delete(ctx context.Context, id int) (*model.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, pkgerrors.ErrRecordNotFound
	}
	delete(r.courses, id)
	return &c, nil
}

func (r *memoryCourseRepo) Mutate(ctx context.Context, id int, fn func(c *model.Course) error) (*model.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.courses[id]
	if !ok {
		return nil, pkgerrors.ErrRecordNotFound
	}
	if err := fn(&c); err != nil {
		return nil, err
	}
	r.courses[id] = c
	return &c, nil
}
