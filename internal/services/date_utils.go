package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrConsumptionDateInvalid      = errors.New("invalid consumption date")
	ErrConsumptionStartDateInvalid = errors.New("invalid start date")
	ErrConsumptionEndDateInvalid   = errors.New("invalid end date")
)

// CalendarDate maps a timestamp to midnight UTC of the calendar day it falls
// on in its own location. Consumption dates are stored in this form.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TodayIn(now time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDate(now.In(location))
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := CalendarDate(value)
	return start, start.AddDate(0, 0, 1)
}

// ParseCalendarDate accepts YYYY-MM-DD or an RFC 3339 timestamp, whose date
// part is used.
func ParseCalendarDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrConsumptionDateInvalid
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return CalendarDate(parsed), nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return CalendarDate(parsed), nil
	}
	return time.Time{}, ErrConsumptionDateInvalid
}

func ParseConsumptionRange(rawStart string, rawEnd string) (*time.Time, *time.Time, error) {
	var start *time.Time
	if strings.TrimSpace(rawStart) != "" {
		parsed, err := ParseCalendarDate(rawStart)
		if err != nil {
			return nil, nil, ErrConsumptionStartDateInvalid
		}
		start = &parsed
	}

	var end *time.Time
	if strings.TrimSpace(rawEnd) != "" {
		parsed, err := ParseCalendarDate(rawEnd)
		if err != nil {
			return nil, nil, ErrConsumptionEndDateInvalid
		}
		end = &parsed
	}

	return start, end, nil
}
