// Package calendar turns an account's upstream schedule into one iCalendar
// document. Week payloads are fetched concurrently and individual fetch
// failures degrade to an event-free week, so the document is always complete
// but possibly sparse.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/example/shift-calendar/internal/account"
	"github.com/example/shift-calendar/internal/manus"
	"github.com/example/shift-calendar/internal/manustime"
)

// ErrMissingReference indicates a shift entry referring to a department absent
// from its own week payload. That is upstream data corruption, not a degraded
// week, so synthesis fails instead of silently omitting the event.
var ErrMissingReference = errors.New("schedule entry references missing department")

// productID identifies this feed generator in the VCALENDAR header.
const productID = "-//shiftcal//shift calendar//EN"

// ScheduleFetcher is the slice of the upstream client synthesis needs.
type ScheduleFetcher interface {
	FetchSchedule(ctx context.Context, nodeID, employeeID string, year, week int, token manus.Token) (manus.ScheduleWeek, error)
}

// Synthesizer builds calendar documents for accounts.
type Synthesizer struct {
	upstream ScheduleFetcher
	codec    *manustime.Codec
	now      func() time.Time
	logger   *slog.Logger
}

// NewSynthesizer wires a synthesizer. The clock is injected so tests can pin
// the week window and the DTSTAMP values.
func NewSynthesizer(upstream ScheduleFetcher, codec *manustime.Codec, now func() time.Time, logger *slog.Logger) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{upstream: upstream, codec: codec, now: now, logger: logger}
}

type weekResult struct {
	target yearWeek
	week   manus.ScheduleWeek
	err    error
}

// Build fetches the account's 17-week window concurrently and assembles one
// serialized VCALENDAR. Events appear in the order their owning week's fetch
// completed; callers must not assume week order.
func (s *Synthesizer) Build(ctx context.Context, acc account.Account) (string, error) {
	cal := ics.NewCalendar()
	cal.SetProductId(productID)

	window := weekWindow(s.now())
	stamp := s.now()

	results := make(chan weekResult, len(window))
	for _, target := range window {
		go func(target yearWeek) {
			week, err := s.upstream.FetchSchedule(ctx, acc.Profile.NodeID, acc.Profile.EmployeeID, target.year, target.week, acc.Token)
			results <- weekResult{target: target, week: week, err: err}
		}(target)
	}

	for range window {
		result := <-results
		if result.err != nil {
			// A week that cannot be fetched contributes no events.
			s.logger.Debug("week fetch failed",
				"username", acc.Credential.Username,
				"year", result.target.year, "week", result.target.week,
				"error", result.err)
			continue
		}
		if err := s.appendWeek(cal, result.week, acc.Profile, stamp); err != nil {
			return "", err
		}
	}

	return cal.Serialize(), nil
}

// appendWeek converts one week payload into events. A day contributes events
// only when it has at least one shift entry and no vacation marker; a vacation
// day is excluded wholesale even if shifts are also present.
func (s *Synthesizer) appendWeek(cal *ics.Calendar, week manus.ScheduleWeek, profile manus.Profile, stamp time.Time) error {
	location := fmt.Sprintf("%s - %s", profile.NodeCode, profile.NodeName)

	for _, day := range week.Schedule {
		if len(day.Entries) == 0 || len(day.Vacation) > 0 {
			continue
		}

		for _, entry := range day.Entries {
			start, err := s.codec.DecodeInstant(day.Date, entry.StartTime)
			if err != nil {
				return fmt.Errorf("shift %d start: %w", entry.ID, err)
			}
			end, err := s.codec.DecodeInstant(day.Date, entry.EndTime)
			if err != nil {
				return fmt.Errorf("shift %d end: %w", entry.ID, err)
			}

			department, ok := week.Departments[entry.DepartmentID]
			if !ok {
				return fmt.Errorf("%w: shift %d, department %d", ErrMissingReference, entry.ID, entry.DepartmentID)
			}

			event := cal.AddEvent(strconv.Itoa(entry.ID))
			event.SetDtStampTime(stamp)
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(department.Name)
			event.SetLocation(location)
		}
	}
	return nil
}
