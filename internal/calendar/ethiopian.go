package calendar

import "time"

// The Ethiopian year runs 7 (or 8, before the September new year) behind the
// Gregorian year. Only the year arithmetic lives here; rendering the full
// Ethiopian date is a display concern and out of scope.

const yearOffset = 7

// ToEthiopian converts a Gregorian year to the Ethiopian year that starts
// within it.
func ToEthiopian(gregorian int) int {
	return gregorian - yearOffset
}

// ToGregorian is the inverse of ToEthiopian.
func ToGregorian(ethiopian int) int {
	return ethiopian + yearOffset
}

// newYearDay returns the Gregorian September day on which the Ethiopian new
// year falls: the 11th, or the 12th when the Gregorian year is a leap year.
func newYearDay(gregorianYear int) int {
	if isGregorianLeap(gregorianYear) {
		return 12
	}
	return 11
}

func isGregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// CurrentEthiopianYear derives the Ethiopian year in effect at now. Before
// the September cutover the previous Ethiopian year is still running.
func CurrentEthiopianYear(now time.Time) int {
	g := now.Year()
	cutover := time.Date(g, time.September, newYearDay(g), 0, 0, 0, 0, now.Location())
	if now.Before(cutover) {
		return g - yearOffset - 1
	}
	return g - yearOffset
}
