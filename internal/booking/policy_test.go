package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kimLalilo/boxe-reventin-planning/internal/booking"
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

// 2024-04-02 is a Tuesday in an ordinary week.
func tuesday(hour, min int) time.Time {
	return time.Date(2024, 4, 2, hour, min, 0, 0, paris)
}

func TestBookingAllowed(t *testing.T) {
	p := booking.NewPolicy(2*time.Hour, paris)

	tests := []struct {
		name      string
		now       time.Time
		weekday   int
		startTime string
		want      bool
	}{
		{
			name:      "same day slot 90 minutes ahead is inside the cutoff",
			now:       tuesday(9, 0),
			weekday:   calendar.Tuesday,
			startTime: "10:30",
			want:      false,
		},
		{
			name:      "same day slot 3 hours ahead is bookable",
			now:       tuesday(9, 0),
			weekday:   calendar.Tuesday,
			startTime: "12:00",
			want:      true,
		},
		{
			name:      "same day slot exactly at the cutoff is bookable",
			now:       tuesday(9, 0),
			weekday:   calendar.Tuesday,
			startTime: "11:00",
			want:      true,
		},
		{
			name:      "same day slot that already started",
			now:       tuesday(19, 0),
			weekday:   calendar.Tuesday,
			startTime: "18:30",
			want:      false,
		},
		{
			name:      "later weekday is always bookable",
			now:       tuesday(23, 50),
			weekday:   calendar.Friday,
			startTime: "07:00",
			want:      true,
		},
		{
			name:      "earlier weekday has elapsed",
			now:       tuesday(9, 0),
			weekday:   calendar.Monday,
			startTime: "23:59",
			want:      false,
		},
		{
			name:      "saturday opens every weekday",
			now:       time.Date(2024, 4, 6, 10, 0, 0, 0, paris),
			weekday:   calendar.Monday,
			startTime: "08:00",
			want:      true,
		},
		{
			name:      "sunday opens every weekday regardless of slot time",
			now:       time.Date(2024, 4, 7, 23, 0, 0, 0, paris),
			weekday:   calendar.Friday,
			startTime: "06:00",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.BookingAllowed(tt.now, tt.weekday, tt.startTime)
			if err != nil {
				t.Fatalf("BookingAllowed() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BookingAllowed(%v, %d, %q) = %v, want %v",
					tt.now, tt.weekday, tt.startTime, got, tt.want)
			}
		})
	}
}

func TestBookingAllowedInvalidInput(t *testing.T) {
	p := booking.NewPolicy(2*time.Hour, paris)

	tests := []struct {
		name      string
		weekday   int
		startTime string
	}{
		{"negative weekday", -1, "10:00"},
		{"saturday index is not bookable", 5, "10:00"},
		{"weekday out of range", 9, "10:00"},
		{"empty time", calendar.Tuesday, ""},
		{"garbage time", calendar.Tuesday, "noon"},
		{"hour out of range", calendar.Tuesday, "25:00"},
		{"minute out of range", calendar.Tuesday, "10:75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.BookingAllowed(tuesday(9, 0), tt.weekday, tt.startTime)
			if !errors.Is(err, booking.ErrInvalidArgument) {
				t.Errorf("BookingAllowed() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestNewPolicyDefaults(t *testing.T) {
	p := booking.NewPolicy(0, nil)
	if p.Cutoff != booking.DefaultCutoff {
		t.Errorf("Cutoff = %v, want %v", p.Cutoff, booking.DefaultCutoff)
	}
	if p.Location != time.UTC {
		t.Errorf("Location = %v, want UTC", p.Location)
	}
}
