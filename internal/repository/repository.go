package repository

import "course-catalog/internal/model"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course CourseRepository
}

// NewRepository 创建 Repository 聚合，seed 为课程目录的初始内容
func NewRepository(seed []model.CourseEntry) *Repository {
	return &Repository{
		Course: NewMemoryCourseRepo(seed),
	}
}
