package calendar_test

import (
	"testing"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
)

func TestEasterSunday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		day   int
	}{
		{2000, time.April, 23},
		{2008, time.March, 23},
		{2011, time.April, 24},
		{2016, time.March, 27},
		{2024, time.March, 31},
		{2025, time.April, 20},
		{2026, time.April, 5},
		{2038, time.April, 25}, // latest possible Easter
		{1818, time.March, 22}, // earliest possible Easter
	}

	for _, tt := range tests {
		got := calendar.EasterSunday(tt.year)
		if got.Month() != tt.month || got.Day() != tt.day {
			t.Errorf("EasterSunday(%d) = %v, want %v %d", tt.year, got.Format("2006-01-02"), tt.month, tt.day)
		}
	}
}

func TestIsPublicHoliday(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"new year", time.Date(2024, 1, 1, 0, 0, 0, 0, paris), true},
		{"labour day", time.Date(2025, 5, 1, 0, 0, 0, 0, paris), true},
		{"victory day", time.Date(2025, 5, 8, 0, 0, 0, 0, paris), true},
		{"bastille day", time.Date(2024, 7, 14, 0, 0, 0, 0, paris), true},
		{"assumption", time.Date(2024, 8, 15, 0, 0, 0, 0, paris), true},
		{"all saints", time.Date(2024, 11, 1, 0, 0, 0, 0, paris), true},
		{"armistice", time.Date(2024, 11, 11, 0, 0, 0, 0, paris), true},
		{"christmas", time.Date(2024, 12, 25, 0, 0, 0, 0, paris), true},
		{"easter monday 2024", time.Date(2024, 4, 1, 0, 0, 0, 0, paris), true},
		{"ascension 2024", time.Date(2024, 5, 9, 0, 0, 0, 0, paris), true},
		{"whit monday 2024", time.Date(2024, 5, 20, 0, 0, 0, 0, paris), true},
		{"easter monday 2026", time.Date(2026, 4, 6, 0, 0, 0, 0, paris), true},
		{"easter sunday itself is a weekend, not on the list", time.Date(2024, 3, 31, 0, 0, 0, 0, paris), false},
		{"ordinary tuesday", time.Date(2024, 4, 2, 0, 0, 0, 0, paris), false},
		{"day after christmas", time.Date(2024, 12, 26, 0, 0, 0, 0, paris), false},
		{"april first in a non-easter-monday year", time.Date(2025, 4, 1, 0, 0, 0, 0, paris), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calendar.IsPublicHoliday(tt.date); got != tt.want {
				t.Errorf("IsPublicHoliday(%v) = %v, want %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
