package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCourse 课程字段不合法
var ErrInvalidCourse = errors.New("课程信息不合法")

// Course 课程记录
// 由课程目录独占持有，对外只返回副本
type Course struct {
	Name       string   `json:"name"`
	Professor  string   `json:"professor"`
	CurrentEnr int      `json:"current_enr"`
	MaxEnr     int      `json:"max_enr"`
	Time       TimeSlot `json:"time"`
}

// CourseEntry 带 ID 的课程（目录按 ID 升序枚举时使用）
type CourseEntry struct {
	ID     int
	Course Course
}

// Validate 校验课程字段
func (c Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name 不能为空", ErrInvalidCourse)
	}
	if strings.TrimSpace(c.Professor) == "" {
		return fmt.Errorf("%w: professor 不能为空", ErrInvalidCourse)
	}
	if c.MaxEnr <= 0 {
		return fmt.Errorf("%w: max_enr 必须大于 0", ErrInvalidCourse)
	}
	if c.CurrentEnr < 0 {
		return fmt.Errorf("%w: current_enr 不能为负数", ErrInvalidCourse)
	}
	return c.Time.Validate()
}

// Available 是否还有空位
func (c Course) Available() bool {
	return c.CurrentEnr < c.MaxEnr
}

// EnrollmentFraction 选课人数，例如 "35/35"
func (c Course) EnrollmentFraction() string {
	return fmt.Sprintf("%d/%d", c.CurrentEnr, c.MaxEnr)
}
