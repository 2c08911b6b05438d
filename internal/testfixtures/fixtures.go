// Package testfixtures provides deterministic fixtures shared by tests: a
// controllable clock and builders for upstream schedule payloads.
package testfixtures

import (
	"sync/atomic"
	"time"

	"github.com/example/shift-calendar/internal/manus"
)

var entryCounter uint64

// referenceTime is a Monday inside ISO week 2024-W03, away from any DST
// transition, so derived week windows and stamps are stable.
var referenceTime = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// DayOffset computes the upstream day encoding (days since 1900-01-01) for a
// civil date.
func DayOffset(year int, month time.Month, day int) int {
	epoch := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(epoch).Hours() / 24)
}

// ShiftEntryOption configures a generated shift entry.
type ShiftEntryOption func(*manus.ShiftEntry)

// NewShiftEntry returns a deterministic shift entry with optional overrides.
// By default it is an eight hour shift in department 1 starting 08:30.
func NewShiftEntry(opts ...ShiftEntryOption) manus.ShiftEntry {
	idx := atomic.AddUint64(&entryCounter, 1)
	entry := manus.ShiftEntry{
		ID:           int(1000 + idx),
		DepartmentID: 1,
		HourCodeID:   1,
		StartTime:    8*60 + 30,
		EndTime:      16*60 + 30,
		TotalTime:    8,
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}

// WithDepartment overrides the entry's department reference.
func WithDepartment(id int) ShiftEntryOption {
	return func(e *manus.ShiftEntry) { e.DepartmentID = id }
}

// WithTimes overrides the entry's start and end minute offsets.
func WithTimes(start, end int) ShiftEntryOption {
	return func(e *manus.ShiftEntry) {
		e.StartTime = start
		e.EndTime = end
	}
}

// NewScheduleWeek wraps day schedules in a week payload whose department and
// hour-code maps cover the default fixture references.
func NewScheduleWeek(days ...manus.DaySchedule) manus.ScheduleWeek {
	return manus.ScheduleWeek{
		Departments: map[int]manus.Department{
			1: {ID: 1, Code: "KAS", Name: "Kassa", Active: true},
			2: {ID: 2, Code: "MAG", Name: "Magazijn", Active: true},
		},
		HourCodes: map[int]manus.HourCode{
			1: {ID: 1, Code: "N", Name: "Normaal", FullName: "Normale uren"},
		},
		Schedule: days,
		Weekdays: []manus.Weekday{{Key: "mon", Text: "maandag"}},
	}
}

// WorkDay builds a day schedule with the given entries and no vacation.
func WorkDay(date int, entries ...manus.ShiftEntry) manus.DaySchedule {
	return manus.DaySchedule{Date: date, Entries: entries}
}

// VacationDay builds a day schedule carrying a vacation marker alongside any
// entries, which excludes the day from synthesis wholesale.
func VacationDay(date int, entries ...manus.ShiftEntry) manus.DaySchedule {
	return manus.DaySchedule{
		Date:     date,
		Entries:  entries,
		Vacation: []manus.VacationPeriod{{StartTime: 0, EndTime: 1439}},
	}
}
