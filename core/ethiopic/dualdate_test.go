package ethiopic

import (
	"testing"
	"time"
)

func TestDualDate_SetGregorian(t *testing.T) {
	var emitted []time.Time
	dd := NewDualDate(
		time.Date(2023, time.September, 12, 0, 0, 0, 0, time.UTC),
		func(t time.Time) { emitted = append(emitted, t) },
	)

	if want := (EthiopianDate{Year: 2016, Month: 1, Day: 1}); dd.Ethiopian() != want {
		t.Fatalf("Ethiopian() = %+v, want %+v", dd.Ethiopian(), want)
	}
	if len(emitted) != 0 {
		t.Fatalf("NewDualDate must not emit, got %d emissions", len(emitted))
	}

	next := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	dd.SetGregorian(next)
	if want := (EthiopianDate{Year: 2016, Month: 4, Day: 28}); dd.Ethiopian() != want {
		t.Errorf("Ethiopian() = %+v, want %+v", dd.Ethiopian(), want)
	}
	if len(emitted) != 1 || !emitted[0].Equal(next) {
		t.Errorf("emitted = %v, want [%v]", emitted, next)
	}
}

func TestDualDate_EthiopianEdits(t *testing.T) {
	var last time.Time
	// Pagume 6 of leap year 2011
	dd := NewDualDate(
		time.Date(2019, time.September, 11, 0, 0, 0, 0, time.UTC),
		func(t time.Time) { last = t },
	)
	if want := (EthiopianDate{Year: 2011, Month: 13, Day: 6}); dd.Ethiopian() != want {
		t.Fatalf("Ethiopian() = %+v, want %+v", dd.Ethiopian(), want)
	}

	// moving to a non-leap year clamps Pagume 6 -> 5
	dd.SetYear(2012)
	if want := (EthiopianDate{Year: 2012, Month: 13, Day: 5}); dd.Ethiopian() != want {
		t.Errorf("SetYear: Ethiopian() = %+v, want %+v", dd.Ethiopian(), want)
	}
	if want := FromEthiopian(2012, 13, 5); !last.Equal(want) {
		t.Errorf("SetYear: emitted %v, want %v", last, want)
	}

	// moving back to a 30-day month keeps the clamped day
	dd.SetMonth(1)
	if want := (EthiopianDate{Year: 2012, Month: 1, Day: 5}); dd.Ethiopian() != want {
		t.Errorf("SetMonth: Ethiopian() = %+v, want %+v", dd.Ethiopian(), want)
	}

	// day edits clamp to the month length
	dd.SetDay(31)
	if want := (EthiopianDate{Year: 2012, Month: 1, Day: 30}); dd.Ethiopian() != want {
		t.Errorf("SetDay: Ethiopian() = %+v, want %+v", dd.Ethiopian(), want)
	}

	// out-of-range month clamps, never wraps
	dd.SetMonth(14)
	if got := dd.Ethiopian().Month; got != 13 {
		t.Errorf("SetMonth(14): month = %d, want 13", got)
	}
}
