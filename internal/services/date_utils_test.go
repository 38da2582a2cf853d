package services

import (
	"errors"
	"testing"
	"time"
)

func TestParseCalendarDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", raw: "2025-02-17", want: time.Date(2025, time.February, 17, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339 keeps local date", raw: "2025-02-17T23:30:00+05:00", want: time.Date(2025, time.February, 17, 0, 0, 0, 0, time.UTC)},
		{name: "blank", raw: "  ", wantErr: true},
		{name: "garbage", raw: "17/02/2025", wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCalendarDate(testCase.raw)
			if testCase.wantErr {
				if !errors.Is(err, ErrConsumptionDateInvalid) {
					t.Fatalf("expected ErrConsumptionDateInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCalendarDate(%q) unexpected error: %v", testCase.raw, err)
			}
			if !got.Equal(testCase.want) {
				t.Fatalf("ParseCalendarDate(%q) = %s, want %s", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestParseConsumptionRange(t *testing.T) {
	t.Parallel()

	start, end, err := ParseConsumptionRange("", "")
	if err != nil || start != nil || end != nil {
		t.Fatalf("expected open range, got start=%v end=%v err=%v", start, end, err)
	}

	start, end, err = ParseConsumptionRange("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("ParseConsumptionRange() unexpected error: %v", err)
	}
	if start == nil || end == nil || start.Day() != 1 || end.Day() != 31 {
		t.Fatalf("unexpected bounds start=%v end=%v", start, end)
	}

	if _, _, err := ParseConsumptionRange("bad", ""); !errors.Is(err, ErrConsumptionStartDateInvalid) {
		t.Fatalf("expected ErrConsumptionStartDateInvalid, got %v", err)
	}
	if _, _, err := ParseConsumptionRange("", "bad"); !errors.Is(err, ErrConsumptionEndDateInvalid) {
		t.Fatalf("expected ErrConsumptionEndDateInvalid, got %v", err)
	}
}

func TestTodayInUsesLocation(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 30, 23, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)

	if got := TodayIn(now, tokyo); got.Day() != 1 || got.Month() != time.July {
		t.Fatalf("expected July 1 in JST, got %s", got)
	}
	if got := TodayIn(now, nil); got.Day() != 30 {
		t.Fatalf("expected June 30 in UTC, got %s", got)
	}
}
