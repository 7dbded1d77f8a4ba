package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeSlot 上课时间不合法
var ErrInvalidTimeSlot = errors.New("上课时间不合法")

// weekdayCodes 上课日字母 → 星期
// R 表示周四（Thursday），与教务系统的惯用写法一致
var weekdayCodes = map[rune]time.Weekday{
	'M': time.Monday,
	'T': time.Tuesday,
	'W': time.Wednesday,
	'R': time.Thursday,
	'F': time.Friday,
}

// TimeSlot 每周上课时间
// Days 由 M/T/W/R/F 组成，字母顺序只影响展示；Start/End 为 24 小时制 HHMM（1100 = 11:00）
type TimeSlot struct {
	Days  string `json:"days"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Validate 校验上课日字母与起止时间
func (t TimeSlot) Validate() error {
	if t.Days == "" {
		return fmt.Errorf("%w: days 不能为空", ErrInvalidTimeSlot)
	}
	seen := make(map[rune]bool, len(t.Days))
	for _, r := range t.Days {
		if _, ok := weekdayCodes[r]; !ok {
			return fmt.Errorf("%w: days 含非法字符 %q", ErrInvalidTimeSlot, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: days 重复 %q", ErrInvalidTimeSlot, r)
		}
		seen[r] = true
	}
	if !validClock(t.Start) {
		return fmt.Errorf("%w: start=%d 不是有效的 HHMM", ErrInvalidTimeSlot, t.Start)
	}
	if !validClock(t.End) {
		return fmt.Errorf("%w: end=%d 不是有效的 HHMM", ErrInvalidTimeSlot, t.End)
	}
	if t.End <= t.Start {
		return fmt.Errorf("%w: end 必须晚于 start", ErrInvalidTimeSlot)
	}
	return nil
}

// Weekdays 按 Days 的书写顺序返回星期
// 调用前应先通过 Validate
func (t TimeSlot) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(t.Days))
	for _, r := range t.Days {
		if d, ok := weekdayCodes[r]; ok {
			days = append(days, d)
		}
	}
	return days
}

// StartClock 返回开始时间的 时、分
func (t TimeSlot) StartClock() (hour, minute int) { return t.Start / 100, t.Start % 100 }

// EndClock 返回结束时间的 时、分
func (t TimeSlot) EndClock() (hour, minute int) { return t.End / 100, t.End % 100 }

// Duration 单次课时长
func (t TimeSlot) Duration() time.Duration {
	sh, sm := t.StartClock()
	eh, em := t.EndClock()
	return time.Duration((eh*60+em)-(sh*60+sm)) * time.Minute
}

// String 例如 "TR 11:00-12:20"
func (t TimeSlot) String() string {
	sh, sm := t.StartClock()
	eh, em := t.EndClock()
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d", t.Days, sh, sm, eh, em)
}

func validClock(v int) bool {
	if v < 0 {
		return false
	}
	return v/100 <= 23 && v%100 <= 59
}
