package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"course-catalog/config"
	"course-catalog/internal/model"
	"course-catalog/internal/repository"
	pkgerrors "course-catalog/pkg/errors"
)

// ── 课程日历 ──────────────────────────────────────────────
//
// 职责：把课程的每周上课时间导出为 iCalendar (RFC 5545)。
//
//   - 每门课一个 VEVENT，DTSTART 为学期内第一次上课
//   - RRULE:FREQ=WEEKLY;BYDAY=...;UNTIL=... 覆盖整个学期
//   - 时间按 calendar.timezone 计算后以 UTC 写出
// ─────────────────────────────────────────────────────────────

const icsProductID = "-//course-catalog//Course Calendar//EN"

var icsWeekdays = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
}

// CalendarService 课程日历业务接口
type CalendarService interface {
	// CourseCalendar 返回 ICS 内容与建议文件名
	CourseCalendar(ctx context.Context, courseID int) ([]byte, string, error)
}

type calendarService struct {
	repo      *repository.Repository
	termStart time.Time
	termWeeks int
	logger    *zap.Logger
	now       func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(cfg *config.CalendarConfig, repo *repository.Repository, logger *zap.Logger) (CalendarService, error) {
	start, err := cfg.TermStartDate()
	if err != nil {
		return nil, fmt.Errorf("解析学期起始日期失败: %w", err)
	}
	return &calendarService{
		repo:      repo,
		termStart: start,
		termWeeks: cfg.TermWeeks,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *calendarService) CourseCalendar(ctx context.Context, courseID int) ([]byte, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrRecordNotFound) {
			return nil, "", ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Int("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	first := firstMeeting(s.termStart, course.Time)
	termEnd := s.termStart.AddDate(0, 0, 7*s.termWeeks)

	event := cal.AddEvent(fmt.Sprintf("course-%d@course-catalog", courseID))
	event.SetDtStampTime(s.now())
	event.SetSummary(course.Name)
	event.SetDescription(fmt.Sprintf("%s · %s", course.Professor, course.EnrollmentFraction()))
	event.SetStartAt(first)
	event.SetEndAt(first.Add(course.Time.Duration()))
	event.AddProperty(ics.ComponentPropertyRrule, weeklyRule(course.Time, termEnd))

	return []byte(cal.Serialize()), fmt.Sprintf("course-%d.ics", courseID), nil
}

// firstMeeting 学期起始日当天或之后第一次上课的时间
func firstMeeting(termStart time.Time, slot model.TimeSlot) time.Time {
	days := make(map[time.Weekday]bool, len(slot.Days))
	for _, d := range slot.Weekdays() {
		days[d] = true
	}

	day := termStart
	for i := 0; i < 7; i++ {
		if days[day.Weekday()] {
			break
		}
		day = day.AddDate(0, 0, 1)
	}

	hour, minute := slot.StartClock()
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, termStart.Location())
}

// weeklyRule 例如 FREQ=WEEKLY;BYDAY=TU,TH;UNTIL=20260426T000000Z
func weeklyRule(slot model.TimeSlot, until time.Time) string {
	byDay := make([]string, 0, len(slot.Days))
	for _, d := range slot.Weekdays() {
		byDay = append(byDay, icsWeekdays[d])
	}
	return fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
		strings.Join(byDay, ","),
		until.UTC().Format("20060102T150405Z"),
	)
}
