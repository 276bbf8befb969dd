// Package ethiopic converts between the Gregorian calendar and the Ethiopian
// (Ge'ez) calendar. The Ethiopian calendar has 13 months: 12 of 30 days and a
// short 13th month, Pagume, of 5 days (6 in leap years).
//
// Conversion goes through Julian Day Numbers using the Amete Mihret epoch
// (Beyene & Kudlek). All functions are pure; conversions hold for any date on
// or after the Ethiopian year 1.
package ethiopic

import (
	"fmt"
	"time"
)

// jdnOffset is the Julian Day Number of the day before Meskerem 1, year 1
// (Amete Mihret epoch).
const jdnOffset = 1723856

var monthNames = [...]string{
	"Meskerem", "Tikimt", "Hidar", "Tahsas", "Tir", "Yekatit",
	"Megabit", "Miyazia", "Ginbot", "Sene", "Hamle", "Nehase", "Pagume",
}

// EthiopianDate is a date in the Ethiopian calendar.
// It is derived, never stored: always computable from a Gregorian date and
// vice versa.
type EthiopianDate struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1 - 13
	Day   int `json:"day"`   // 1 - 30 (1 - 5/6 in Pagume)
}

// Format renders the date as "<MonthName> <day>, <year>", eg. "Meskerem 1, 2016".
func (d EthiopianDate) Format() string {
	return fmt.Sprintf("%s %d, %d", monthNames[d.Month-1], d.Day, d.Year)
}

// Gregorian returns the corresponding Gregorian date at midnight UTC.
func (d EthiopianDate) Gregorian() time.Time {
	return FromEthiopian(d.Year, d.Month, d.Day)
}

// IsLeapYear reports whether the Ethiopian year y is a leap year.
// Every 4th year is a leap year, with no century exception: leap iff y % 4 == 3.
func IsLeapYear(y int) bool {
	return y%4 == 3
}

// DaysInMonth returns the number of days in the given Ethiopian month.
// Months 1-12 always have 30 days; Pagume has 6 in leap years, else 5.
func DaysInMonth(year, month int) int {
	if month < 13 {
		return 30
	}
	if IsLeapYear(year) {
		return 6
	}
	return 5
}

// ToEthiopian converts a Gregorian date to its Ethiopian equivalent.
// Only the year, month and day of t are significant.
func ToEthiopian(t time.Time) EthiopianDate {
	y, m, d := t.Date()
	jdn := gregorianToJDN(y, int(m), d)

	c := jdn - jdnOffset
	r := c % 1461
	n := r%365 + 365*(r/1460)
	return EthiopianDate{
		Year:  4*(c/1461) + r/365 - r/1460,
		Month: n/30 + 1,
		Day:   n%30 + 1,
	}
}

// FromEthiopian converts an Ethiopian date to the corresponding Gregorian date
// at midnight UTC.
//
// Caller contract: month must be in [1, 13] and day in [1, DaysInMonth(year, month)].
// FromEthiopian does not validate its inputs; callers clamp day with
// DaysInMonth before calling (see DualDate). Out-of-range input yields an
// undefined date, never a panic.
func FromEthiopian(year, month, day int) time.Time {
	jdn := jdnOffset + 365 + 365*(year-1) + year/4 + 30*(month-1) + day - 1
	y, m, d := jdnToGregorian(jdn)
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// gregorianToJDN computes the Julian Day Number of a Gregorian date
// (Fliegel & Van Flandern).
func gregorianToJDN(y, m, d int) int {
	a := (m - 14) / 12
	return (1461*(y+4800+a))/4 +
		(367*(m-2-12*a))/12 -
		(3*((y+4900+a)/100))/4 +
		d - 32075
}

// jdnToGregorian is the inverse of gregorianToJDN.
func jdnToGregorian(jdn int) (y, m, d int) {
	l := jdn + 68569
	n := (4 * l) / 146097
	l -= (146097*n + 3) / 4
	i := (4000 * (l + 1)) / 1461001
	l -= (1461*i)/4 - 31
	j := (80 * l) / 2447
	d = l - (2447*j)/80
	l = j / 11
	m = j + 2 - 12*l
	y = 100*(n-49) + i + l
	return y, m, d
}
