package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/calendar"
)

var paris = mustLoad("Europe/Paris")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// TestCurrentWeek checks the weekend rollover: bookings made on Saturday
// or Sunday target the upcoming work week, not the one that just ended.
func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want calendar.Week
	}{
		{
			name: "midweek keeps own week",
			now:  time.Date(2024, 4, 3, 10, 0, 0, 0, paris), // Wednesday, week 14
			want: calendar.Week{Number: 14, Year: 2024},
		},
		{
			name: "saturday rolls to next week",
			now:  time.Date(2024, 4, 6, 9, 0, 0, 0, paris), // Saturday of week 14
			want: calendar.Week{Number: 15, Year: 2024},
		},
		{
			name: "sunday rolls to next week",
			now:  time.Date(2024, 4, 7, 23, 30, 0, 0, paris),
			want: calendar.Week{Number: 15, Year: 2024},
		},
		{
			name: "sunday at year end rolls into next iso year",
			now:  time.Date(2023, 12, 31, 12, 0, 0, 0, paris), // Sunday of week 52
			want: calendar.Week{Number: 1, Year: 2024},
		},
		{
			name: "early january can still belong to previous iso year",
			now:  time.Date(2027, 1, 1, 8, 0, 0, 0, paris), // Friday, ISO week 53 of 2026
			want: calendar.Week{Number: 53, Year: 2026},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := calendar.CurrentWeek(tt.now); got != tt.want {
				t.Errorf("CurrentWeek(%v) = %+v, want %+v", tt.now, got, tt.want)
			}
		})
	}
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name    string
		week    calendar.Week
		weekday int
		want    time.Time
	}{
		{
			name:    "monday of week 14 2024",
			week:    calendar.Week{Number: 14, Year: 2024},
			weekday: calendar.Monday,
			want:    time.Date(2024, 4, 1, 0, 0, 0, 0, paris),
		},
		{
			name:    "friday of week 1 2021",
			week:    calendar.Week{Number: 1, Year: 2021},
			weekday: calendar.Friday,
			want:    time.Date(2021, 1, 8, 0, 0, 0, 0, paris),
		},
		{
			name:    "monday of week 1 2015 falls in december 2014",
			week:    calendar.Week{Number: 1, Year: 2015},
			weekday: calendar.Monday,
			want:    time.Date(2014, 12, 29, 0, 0, 0, 0, paris),
		},
		{
			name:    "wednesday of week 53 2020",
			week:    calendar.Week{Number: 53, Year: 2020},
			weekday: calendar.Wednesday,
			want:    time.Date(2020, 12, 30, 0, 0, 0, 0, paris),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.ResolveDate(tt.week, tt.weekday, paris)
			if err != nil {
				t.Fatalf("ResolveDate() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ResolveDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveDateInvalidWeekday(t *testing.T) {
	for _, weekday := range []int{-1, 5, 6, 42} {
		_, err := calendar.ResolveDate(calendar.Week{Number: 10, Year: 2024}, weekday, paris)
		if !errors.Is(err, calendar.ErrInvalidWeekday) {
			t.Errorf("ResolveDate(weekday=%d) error = %v, want ErrInvalidWeekday", weekday, err)
		}
	}
}

// TestResolveDateRoundTrip re-derives (year, week, weekday) from resolved
// dates and expects the original triple back, across year boundaries.
func TestResolveDateRoundTrip(t *testing.T) {
	for year := 2020; year <= 2028; year++ {
		for _, weekNum := range []int{1, 2, 26, 51, 52} {
			for weekday := calendar.Monday; weekday <= calendar.Friday; weekday++ {
				week := calendar.Week{Number: weekNum, Year: year}
				date, err := calendar.ResolveDate(week, weekday, paris)
				if err != nil {
					t.Fatalf("ResolveDate(%+v, %d) error = %v", week, weekday, err)
				}
				gotYear, gotWeek := date.ISOWeek()
				gotWeekday := (int(date.Weekday()) + 6) % 7
				if gotYear != year || gotWeek != weekNum || gotWeekday != weekday {
					t.Errorf("round trip of %+v weekday %d gave (%d, %d, %d)",
						week, weekday, gotYear, gotWeek, gotWeekday)
				}
			}
		}
	}
}
