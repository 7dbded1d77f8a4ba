package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"course-catalog/internal/model"
	"course-catalog/internal/repository"
)

// ── 测试辅助 ──

func setupTestEnrollmentService() (EnrollmentService, *repository.Repository) {
	repo := newTestRepo(repository.SeedCourses())
	return NewEnrollmentService(repo, zap.NewNop()), repo
}

// ── Enroll 测试 ──

func TestEnrollmentService_Enroll_UntilFull(t *testing.T) {
	svc, repo := setupTestEnrollmentService()
	ctx := context.Background()

	result, err := svc.Enroll(ctx, 1)
	if err != nil {
		t.Fatalf("Enroll 应成功: %v", err)
	}
	if result.Enrolled != "35/35" {
		t.Errorf("期望 35/35，实际=%s", result.Enrolled)
	}

	_, err = svc.Enroll(ctx, 1)
	if !errors.Is(err, ErrCourseFull) {
		t.Fatalf("期望 ErrCourseFull，实际: %v", err)
	}

	course, _ := repo.Course.GetByID(ctx, 1)
	if course.CurrentEnr != 35 {
		t.Errorf("满员后人数不应变化，实际=%d", course.CurrentEnr)
	}
}

func TestEnrollmentService_Enroll_OverCapacitySeed(t *testing.T) {
	svc, repo := setupTestEnrollmentService()
	ctx := context.Background()

	if _, err := svc.Enroll(ctx, 4); !errors.Is(err, ErrCourseFull) {
		t.Errorf("超员课程期望 ErrCourseFull，实际: %v", err)
	}
	course, _ := repo.Course.GetByID(ctx, 4)
	if course.CurrentEnr != 36 {
		t.Errorf("人数不应变化，实际=%d", course.CurrentEnr)
	}
}

func TestEnrollmentService_Enroll_NotFound(t *testing.T) {
	svc, _ := setupTestEnrollmentService()

	_, err := svc.Enroll(context.Background(), 99)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestEnrollmentService_Enroll_NeverExceedsCapacity(t *testing.T) {
	repo := newTestRepo([]model.CourseEntry{
		{ID: 7, Course: model.Course{
			Name: "Seminar", Professor: "P", CurrentEnr: 0, MaxEnr: 5,
			Time: model.TimeSlot{Days: "F", Start: 1500, End: 1700},
		}},
	})
	svc := NewEnrollmentService(repo, zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 40)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Enroll(ctx, 7)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrCourseFull):
			full++
		default:
			t.Errorf("非预期错误: %v", err)
		}
	}
	if ok != 5 || full != 35 {
		t.Errorf("期望 5 次成功 35 次满员，实际 ok=%d full=%d", ok, full)
	}

	course, _ := repo.Course.GetByID(ctx, 7)
	if course.CurrentEnr != course.MaxEnr {
		t.Errorf("期望人数等于容量，实际 %d/%d", course.CurrentEnr, course.MaxEnr)
	}
}

// ── Unenroll 测试 ──

func TestEnrollmentService_Unenroll_NoOp(t *testing.T) {
	svc, repo := setupTestEnrollmentService()
	ctx := context.Background()

	if err := svc.Unenroll(ctx, 1); err != nil {
		t.Fatalf("Unenroll 应成功: %v", err)
	}
	course, _ := repo.Course.GetByID(ctx, 1)
	if course.CurrentEnr != 34 {
		t.Errorf("Unenroll 目前不修改人数，实际=%d", course.CurrentEnr)
	}

	if err := svc.Unenroll(ctx, 99); !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}
