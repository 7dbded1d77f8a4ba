package dto

// ── 课程模块 DTO ──

// TimeSlotRequest 上课时间
// 字母合法性与起止时间由 model.TimeSlot.Validate 校验
type TimeSlotRequest struct {
	Days  string `json:"days"  binding:"required,max=5"` // "TR" / "MWF"
	Start *int   `json:"start" binding:"required,min=0"` // 1100 = 11:00；0 点合法，须区分缺省
	End   *int   `json:"end"   binding:"required,min=0"`
}

// CourseRequest 创建 / 更新课程请求
type CourseRequest struct {
	Name       string          `json:"name"        binding:"required,max=200"`
	Professor  string          `json:"professor"   binding:"required,max=100"`
	CurrentEnr int             `json:"current_enr" binding:"min=0"`
	MaxEnr     int             `json:"max_enr"     binding:"required,min=1"`
	Time       TimeSlotRequest `json:"time"`
}

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	Available bool `form:"available"`
}

// CourseNameRequest 按名称查询参数
type CourseNameRequest struct {
	Name string `form:"name" binding:"required"`
}

// TimeSlotResponse 上课时间响应
type TimeSlotResponse struct {
	Days  string `json:"days"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID         int              `json:"-"`
	Name       string           `json:"name"`
	Professor  string           `json:"professor"`
	CurrentEnr int              `json:"current_enr"`
	MaxEnr     int              `json:"max_enr"`
	Time       TimeSlotResponse `json:"time"`
}

// CourseMap 课程 ID → 课程，JSON 编码为对象
type CourseMap map[int]CourseResponse

// NewCourseMap 由有序列表构造 CourseMap
func NewCourseMap(courses []CourseResponse) CourseMap {
	m := make(CourseMap, len(courses))
	for _, c := range courses {
		m[c.ID] = c
	}
	return m
}

// CourseEnrollmentResponse 选课情况（管理端）
type CourseEnrollmentResponse struct {
	Name       string `json:"name"`
	CurrentEnr int    `json:"current_enr"`
	MaxEnr     int    `json:"max_enr"`
}

// EnrollResponse 选课结果
type EnrollResponse struct {
	Enrolled string `json:"enrolled"` // "35/35"
}

// CurrentAdminResponse 当前管理员
type CurrentAdminResponse struct {
	Username string `json:"username"`
}
