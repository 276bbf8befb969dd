package ethiopic

import "time"

// DualDate keeps a Gregorian and an Ethiopian view of the same day consistent
// under independent edits to either side. The Gregorian date is the single
// source of truth; the Ethiopian triple is derived from it after every change.
//
// Ethiopian field edits clamp the day to DaysInMonth(year, month) before
// converting, then re-derive the Ethiopian triple from the resulting Gregorian
// date so a clamped edit cannot drift the two views apart. The month is
// clamped into [1, 13] under the same policy (clamp, never wrap).
//
// All operations are synchronous; the only side effect is the change callback,
// which receives the canonical Gregorian date.
type DualDate struct {
	greg     time.Time
	eth      EthiopianDate
	onChange func(time.Time)
}

// NewDualDate returns a DualDate anchored on the given Gregorian date.
// onChange may be nil.
func NewDualDate(initial time.Time, onChange func(time.Time)) *DualDate {
	dd := &DualDate{onChange: onChange}
	dd.set(initial)
	return dd
}

func (dd *DualDate) Gregorian() time.Time     { return dd.greg }
func (dd *DualDate) Ethiopian() EthiopianDate { return dd.eth }

// SetGregorian replaces the date from the Gregorian side.
func (dd *DualDate) SetGregorian(t time.Time) {
	dd.set(t)
	dd.emit()
}

// SetYear edits the Ethiopian year, keeping month and day (day clamped).
func (dd *DualDate) SetYear(year int) {
	dd.setEthiopian(year, dd.eth.Month, dd.eth.Day)
}

// SetMonth edits the Ethiopian month, keeping year and day (day clamped).
func (dd *DualDate) SetMonth(month int) {
	dd.setEthiopian(dd.eth.Year, month, dd.eth.Day)
}

// SetDay edits the Ethiopian day (clamped to the current month's length).
func (dd *DualDate) SetDay(day int) {
	dd.setEthiopian(dd.eth.Year, dd.eth.Month, day)
}

func (dd *DualDate) set(t time.Time) {
	y, m, d := t.Date()
	dd.greg = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dd.eth = ToEthiopian(dd.greg)
}

func (dd *DualDate) setEthiopian(year, month, day int) {
	month = clamp(month, 1, 13)
	day = clamp(day, 1, DaysInMonth(year, month))
	dd.set(FromEthiopian(year, month, day))
	dd.emit()
}

func (dd *DualDate) emit() {
	if dd.onChange != nil {
		dd.onChange(dd.greg)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
