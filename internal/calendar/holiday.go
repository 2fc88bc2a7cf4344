package calendar

import "time"

// IsPublicHoliday reports whether the given date is a French public
// holiday, in which case the club is closed and no class runs. It covers
// the fixed annual list plus the moveable feasts derived from Easter.
func IsPublicHoliday(date time.Time) bool {
	m, d := date.Month(), date.Day()
	switch {
	case m == time.January && d == 1: // Jour de l'an
		return true
	case m == time.May && d == 1: // Fête du travail
		return true
	case m == time.May && d == 8: // Victoire 1945
		return true
	case m == time.July && d == 14: // Fête nationale
		return true
	case m == time.August && d == 15: // Assomption
		return true
	case m == time.November && d == 1: // Toussaint
		return true
	case m == time.November && d == 11: // Armistice
		return true
	case m == time.December && d == 25: // Noël
		return true
	}
	easter := EasterSunday(date.Year())
	for _, offset := range []int{1, 39, 50} { // Lundi de Pâques, Ascension, Lundi de Pentecôte
		f := easter.AddDate(0, 0, offset)
		if f.Month() == m && f.Day() == d {
			return true
		}
	}
	return false
}

// EasterSunday computes the Gregorian Easter date for the given year
// using the Meeus/Jones/Butcher congruence algorithm. Valid for any
// Gregorian year (1583 onwards).
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
