package certificate

import (
	"math"
	"time"

	"github.com/tsegazeab/timhirt/core/grading"
)

// The per-rule evaluators are pure: they take already-fetched data plus the
// evaluation instant and return the award (without ID) and whether the rule
// passed. Repeated evaluation with identical inputs yields identical results.

// evalTopPerformer requires at least minGradedCount graded submissions in the
// trailing 90 days, averaging (round-half-up) at least minAverageGrade.
func evalTopPerformer(subs []grading.Submission, now time.Time) (Award, bool) {
	start := now.AddDate(0, 0, -topPerformerWindowDays)

	var sum float64
	var count int
	for _, sub := range subs {
		if !sub.IsGraded() || !inWindow(sub.SubmittedAt, start, now) {
			continue
		}
		sum += sub.Grade.Float64
		count++
	}
	if count < minGradedCount {
		return Award{}, false
	}
	avg := roundHalfUp(sum / float64(count))
	if avg < minAverageGrade {
		return Award{}, false
	}

	return Award{
		Type:        TypeTopPerformer,
		AwardedAt:   now,
		PeriodStart: start,
		PeriodEnd:   now,
		Details: map[string]int{
			"average_grade": avg,
			"graded_count":  count,
		},
	}, true
}

// evalPerfectAttendance requires at least minActiveDays present days in the
// trailing 30 days.
func evalPerfectAttendance(daysActive int, now time.Time) (Award, bool) {
	if daysActive < minActiveDays {
		return Award{}, false
	}
	return Award{
		Type:        TypePerfectAttendance,
		AwardedAt:   now,
		PeriodStart: now.AddDate(0, 0, -perfectAttendanceWindowDays),
		PeriodEnd:   now,
		Details: map[string]int{
			"days_active": daysActive,
		},
	}, true
}

// evalHomeworkHero considers windowed submissions whose assignment is known;
// a submission matches iff it was graded at least minOnTimeGrade and submitted
// on or before the assignment's due date. Requires at least minConsidered
// considered submissions and an on-time rate (round-half-up percent) of at
// least minOnTimeRate.
func evalHomeworkHero(subs []grading.Submission, assignments map[string]grading.Assignment, now time.Time) (Award, bool) {
	start := now.AddDate(0, 0, -homeworkHeroWindowDays)

	var considered, matches int
	for _, sub := range subs {
		if !inWindow(sub.SubmittedAt, start, now) {
			continue
		}
		a, ok := assignments[sub.AssignmentID]
		if !ok {
			continue
		}
		considered++
		if sub.IsGraded() && !sub.SubmittedAt.After(a.DueDate) && sub.Grade.Float64 >= minOnTimeGrade {
			matches++
		}
	}
	if considered < minConsidered {
		return Award{}, false
	}
	rate := roundHalfUp(100 * float64(matches) / float64(considered))
	if rate < minOnTimeRate {
		return Award{}, false
	}

	return Award{
		Type:        TypeHomeworkHero,
		AwardedAt:   now,
		PeriodStart: start,
		PeriodEnd:   now,
		Details: map[string]int{
			"on_time_rate": rate,
			"considered":   considered,
		},
	}, true
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// roundHalfUp rounds to the nearest integer, halves up. Inputs are never
// negative here (grades and rates).
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
