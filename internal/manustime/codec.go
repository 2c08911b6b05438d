// Package manustime decodes the compact day/minute integer encoding used by the
// Manus scheduling API into timezone-aware instants and renders instants in the
// iCalendar UTC text form.
package manustime

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTime indicates a minute offset outside [0, 1440), which violates the
// upstream contract.
var ErrInvalidTime = errors.New("invalid minute offset")

// utcStampLayout is the compact iCalendar UTC form, e.g. 20240115T083000Z.
const utcStampLayout = "20060102T150405Z"

// Codec converts upstream day/minute offsets into instants localized to the
// scheduling service's home region.
type Codec struct {
	loc *time.Location
}

// NewCodec builds a codec for the named IANA timezone.
func NewCodec(timezone string) (*Codec, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Codec{loc: loc}, nil
}

// DecodeDate returns the civil calendar date exactly dayOffset days after the
// upstream epoch, 1900-01-01. The caller guarantees sane upstream values; there
// is no upper bound.
func (c *Codec) DecodeDate(dayOffset int) time.Time {
	epoch := time.Date(1900, time.January, 1, 0, 0, 0, 0, c.loc)
	return epoch.AddDate(0, 0, dayOffset)
}

// DecodeTime splits a minute-of-day offset into an hour and minute. Offsets
// outside [0, 1440) fail with ErrInvalidTime.
func DecodeTime(minuteOffset int) (hour, minute int, err error) {
	if minuteOffset < 0 || minuteOffset >= 24*60 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidTime, minuteOffset)
	}
	return minuteOffset / 60, minuteOffset % 60, nil
}

// DecodeInstant combines a day offset and a minute offset into an absolute
// instant, interpreting the pair as local wall-clock time in the codec's
// region. Localizing before any conversion keeps shifts on the correct side of
// daylight-saving transitions.
func (c *Codec) DecodeInstant(dayOffset, minuteOffset int) (time.Time, error) {
	hour, minute, err := DecodeTime(minuteOffset)
	if err != nil {
		return time.Time{}, err
	}
	date := c.DecodeDate(dayOffset)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, c.loc), nil
}

// FormatUTC renders an instant converted to UTC in the compact iCalendar form
// YYYYMMDDThhmmssZ. Formatting is round-trip stable for a given instant.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(utcStampLayout)
}
