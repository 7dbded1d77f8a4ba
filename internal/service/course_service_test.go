package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"course-catalog/internal/dto"
	"course-catalog/internal/model"
	"course-catalog/internal/repository"
)

// ── 测试辅助 ──

func newTestRepo(seed []model.CourseEntry) *repository.Repository {
	return &repository.Repository{
		Course: repository.NewMemoryCourseRepo(seed),
	}
}

func setupTestCourseService() (CourseService, *repository.Repository) {
	repo := newTestRepo(repository.SeedCourses())
	return NewCourseService(repo, zap.NewNop()), repo
}

func newCourseRequest(name, professor string) *dto.CourseRequest {
	return &dto.CourseRequest{
		Name:      name,
		Professor: professor,
		MaxEnr:    30,
		Time:      dto.TimeSlotRequest{Days: "MWF", Start: intPtr(1000), End: intPtr(1050)},
	}
}

func intPtr(v int) *int { return &v }

// ── Get 测试 ──

func TestCourseService_Get_Success(t *testing.T) {
	svc, _ := setupTestCourseService()

	result, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if result.Name != "Data Visualization" {
		t.Errorf("期望Name=Data Visualization，实际=%s", result.Name)
	}
	if result.Time.Days != "TR" || result.Time.Start != 1100 || result.Time.End != 1220 {
		t.Errorf("上课时间不正确: %+v", result.Time)
	}
}

func TestCourseService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.Get(context.Background(), 99)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── Create 测试 ──

func TestCourseService_Create_ThenGet(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 5, newCourseRequest("Algorithms", "Grace Hopper"))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if created.ID != 5 || created.CurrentEnr != 0 {
		t.Errorf("期望 ID=5 CurrentEnr=0，实际 %+v", created)
	}

	got, err := svc.Get(ctx, 5)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if *got != *created {
		t.Errorf("Get 结果与 Create 返回值不一致: %+v vs %+v", got, created)
	}
}

func TestCourseService_Create_Conflict(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, 5, newCourseRequest("Algorithms", "Grace Hopper")); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}
	_, err := svc.Create(ctx, 5, newCourseRequest("Compilers", "Grace Hopper"))
	if !errors.Is(err, ErrCourseExists) {
		t.Errorf("期望 ErrCourseExists，实际: %v", err)
	}

	// 种子课程同样冲突
	if _, err := svc.Create(ctx, 1, newCourseRequest("Dup", "X")); !errors.Is(err, ErrCourseExists) {
		t.Errorf("期望 ErrCourseExists，实际: %v", err)
	}
}

func TestCourseService_Create_Invalid(t *testing.T) {
	svc, _ := setupTestCourseService()

	tests := []struct {
		name    string
		mutate  func(r *dto.CourseRequest)
		wantErr error
	}{
		{"BadDays", func(r *dto.CourseRequest) { r.Time.Days = "MX" }, model.ErrInvalidTimeSlot},
		{"EndBeforeStart", func(r *dto.CourseRequest) { r.Time.End = intPtr(900) }, model.ErrInvalidTimeSlot},
		{"MissingStart", func(r *dto.CourseRequest) { r.Time.Start = nil }, model.ErrInvalidCourse},
		{"MissingEnd", func(r *dto.CourseRequest) { r.Time.End = nil }, model.ErrInvalidCourse},
		{"ZeroCapacity", func(r *dto.CourseRequest) { r.MaxEnr = 0 }, model.ErrInvalidCourse},
		{"BlankName", func(r *dto.CourseRequest) { r.Name = " " }, model.ErrInvalidCourse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newCourseRequest("Algorithms", "Grace Hopper")
			tt.mutate(req)

			_, err := svc.Create(context.Background(), 6, req)
			if !errors.Is(err, ErrInvalidCourse) {
				t.Errorf("期望 ErrInvalidCourse，实际: %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望包装 %v，实际: %v", tt.wantErr, err)
			}
		})
	}

	if _, err := svc.Get(context.Background(), 6); !errors.Is(err, ErrCourseNotFound) {
		t.Error("校验失败的课程不应写入目录")
	}
}

func TestCourseService_Create_MidnightStartIsValid(t *testing.T) {
	svc, _ := setupTestCourseService()

	req := newCourseRequest("Night Lab", "Grace Hopper")
	req.Time.Start, req.Time.End = intPtr(0), intPtr(50)

	result, err := svc.Create(context.Background(), 7, req)
	if err != nil {
		t.Fatalf("显式给出 start=0 应合法: %v", err)
	}
	if result.Time.Start != 0 || result.Time.End != 50 {
		t.Errorf("上课时间不正确: %+v", result.Time)
	}
}

func TestCourseService_Create_InvalidMessageNotRepeated(t *testing.T) {
	svc, _ := setupTestCourseService()

	tests := []struct {
		name   string
		mutate func(r *dto.CourseRequest)
	}{
		{"CourseField", func(r *dto.CourseRequest) { r.MaxEnr = 0 }},
		{"TimeSlot", func(r *dto.CourseRequest) { r.Time.Days = "MX" }},
		{"MissingStart", func(r *dto.CourseRequest) { r.Time.Start = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newCourseRequest("Algorithms", "Grace Hopper")
			tt.mutate(req)

			_, err := svc.Create(context.Background(), 8, req)
			if err == nil {
				t.Fatal("期望校验失败")
			}
			if n := strings.Count(err.Error(), ErrInvalidCourse.Error()); n != 1 {
				t.Errorf("错误信息中“%s”出现 %d 次: %q", ErrInvalidCourse.Error(), n, err.Error())
			}
		})
	}
}

// ── Update 测试 ──

func TestCourseService_Update_Success(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	req := newCourseRequest("Data Visualization II", "Dana Willner")
	req.CurrentEnr = 10
	result, err := svc.Update(ctx, 1, req)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "Data Visualization II" {
		t.Errorf("期望Name=Data Visualization II，实际=%s", result.Name)
	}

	got, _ := svc.Get(ctx, 1)
	if got.CurrentEnr != 10 || got.Time.Days != "MWF" {
		t.Errorf("更新未生效: %+v", got)
	}
}

func TestCourseService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.Update(context.Background(), 99, newCourseRequest("Ghost", "Nobody"))
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestCourseService_Delete_ThenGet(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	deleted, err := svc.Delete(ctx, 3)
	if err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if deleted.Name != "Computational Problem Solving" {
		t.Errorf("期望返回被删除课程，实际=%s", deleted.Name)
	}

	if _, err := svc.Get(ctx, 3); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("删除后 Get 应返回 ErrCourseNotFound，实际: %v", err)
	}
}

func TestCourseService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	_, err := svc.Delete(context.Background(), 99)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── GetEnrollment 测试 ──

func TestCourseService_GetEnrollment(t *testing.T) {
	svc, _ := setupTestCourseService()

	result, err := svc.GetEnrollment(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetEnrollment 应成功: %v", err)
	}
	if result.Name != "Intro Data Science" || result.CurrentEnr != 36 || result.MaxEnr != 35 {
		t.Errorf("选课情况不正确: %+v", result)
	}

	if _, err := svc.GetEnrollment(context.Background(), 99); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── List 测试 ──

func TestCourseService_List_All(t *testing.T) {
	svc, _ := setupTestCourseService()

	courses, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(courses) != 4 {
		t.Fatalf("期望4门课程，实际=%d", len(courses))
	}
	for i, c := range courses {
		if c.ID != i+1 {
			t.Errorf("期望按 ID 升序，第%d项 ID=%d", i, c.ID)
		}
	}
}

func TestCourseService_List_AvailableOnly(t *testing.T) {
	svc, _ := setupTestCourseService()

	courses, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	// 种子中 2 号满员、4 号超员
	if len(courses) != 2 || courses[0].ID != 1 || courses[1].ID != 3 {
		t.Errorf("期望只返回课程 1 和 3，实际: %+v", courses)
	}
	for _, c := range courses {
		if c.CurrentEnr >= c.MaxEnr {
			t.Errorf("不应返回满员课程: %+v", c)
		}
	}
}

// ── FindByName 测试 ──

func TestCourseService_FindByName(t *testing.T) {
	svc, _ := setupTestCourseService()

	result, err := svc.FindByName(context.Background(), "Data Structures")
	if err != nil {
		t.Fatalf("FindByName 应成功: %v", err)
	}
	if result.ID != 2 {
		t.Errorf("期望课程 ID=2，实际=%d", result.ID)
	}
}

func TestCourseService_FindByName_FirstMatchByID(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, 9, newCourseRequest("Data Structures", "Someone Else")); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.FindByName(ctx, "Data Structures")
	if err != nil {
		t.Fatalf("FindByName 应成功: %v", err)
	}
	if result.ID != 2 {
		t.Errorf("同名课程应返回 ID 最小的一门，实际=%d", result.ID)
	}
}

func TestCourseService_FindByName_NotFound(t *testing.T) {
	svc, _ := setupTestCourseService()

	tests := []string{"Quantum Basket Weaving", "data structures", "Data Structures "}
	for _, name := range tests {
		if _, err := svc.FindByName(context.Background(), name); !errors.Is(err, ErrCourseNotFound) {
			t.Errorf("name=%q 期望 ErrCourseNotFound，实际: %v", name, err)
		}
	}
}

// ── FindByProfessor 测试 ──

func TestCourseService_FindByProfessor(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	all, err := svc.FindByProfessor(ctx, "Dana Willner", false)
	if err != nil {
		t.Fatalf("FindByProfessor 应成功: %v", err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 4 {
		t.Errorf("期望课程 1 和 4，实际: %+v", all)
	}

	available, err := svc.FindByProfessor(ctx, "Dana Willner", true)
	if err != nil {
		t.Fatalf("FindByProfessor(available) 应成功: %v", err)
	}
	if len(available) != 1 || available[0].ID != 1 {
		t.Errorf("期望只返回课程 1，实际: %+v", available)
	}
}

func TestCourseService_FindByProfessor_AvailableIsSubset(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	for _, prof := range []string{"Dana Willner", "Jim Deverick", "Timothy Davis"} {
		all, _ := svc.FindByProfessor(ctx, prof, false)
		available, _ := svc.FindByProfessor(ctx, prof, true)

		ids := make(map[int]bool, len(all))
		for _, c := range all {
			ids[c.ID] = true
		}
		for _, c := range available {
			if !ids[c.ID] {
				t.Errorf("prof=%s 课程 %d 不在全部结果中", prof, c.ID)
			}
		}
	}
}

func TestCourseService_FindByProfessor_Empty(t *testing.T) {
	svc, _ := setupTestCourseService()
	ctx := context.Background()

	if _, err := svc.FindByProfessor(ctx, "Nobody", false); !errors.Is(err, ErrProfessorNoCourses) {
		t.Errorf("期望 ErrProfessorNoCourses，实际: %v", err)
	}
	// Jim Deverick 只有一门满员课程
	if _, err := svc.FindByProfessor(ctx, "Jim Deverick", true); !errors.Is(err, ErrProfessorNoCourses) {
		t.Errorf("期望 ErrProfessorNoCourses，实际: %v", err)
	}
}
