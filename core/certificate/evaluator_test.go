package certificate

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tsegazeab/timhirt/core/grading"
)

var evalNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func gradedSub(daysAgo int, grade float64) grading.Submission {
	return grading.Submission{
		ID:           "sub",
		StudentID:    "student",
		AssignmentID: "assignment",
		SubmittedAt:  evalNow.AddDate(0, 0, -daysAgo),
		Status:       grading.StatusGraded,
		Grade:        null.Float64From(grade),
	}
}

func gradedSubs(daysAgo int, grades ...float64) []grading.Submission {
	subs := make([]grading.Submission, 0, len(grades))
	for _, g := range grades {
		subs = append(subs, gradedSub(daysAgo, g))
	}
	return subs
}

func Test_evalTopPerformer(t *testing.T) {
	tests := []struct {
		name    string
		subs    []grading.Submission
		want    bool
		wantAvg int
		wantCnt int
	}{
		{
			name:    "exactly 5 graded averaging exactly 90 is eligible",
			subs:    gradedSubs(10, 90, 90, 90, 90, 90),
			want:    true,
			wantAvg: 90,
			wantCnt: 5,
		},
		{
			name: "average rounding to 89 is not eligible",
			subs: gradedSubs(10, 89, 89, 89, 89, 89),
			want: false,
		},
		{
			name: "average 89.5 rounds half up to 90 and is eligible",
			subs: gradedSubs(10, 89, 90, 89, 90, 89, 90, 89, 90, 89, 90),
			want: true, wantAvg: 90, wantCnt: 10,
		},
		{
			name: "only 4 graded in window is not eligible",
			subs: gradedSubs(10, 95, 95, 95, 95),
			want: false,
		},
		{
			name: "submissions outside the 90-day window are ignored",
			subs: append(gradedSubs(10, 90, 90, 90, 90), gradedSub(91, 90)),
			want: false,
		},
		{
			name: "ungraded submissions are ignored",
			subs: append(gradedSubs(10, 90, 90, 90, 90), grading.Submission{
				SubmittedAt: evalNow.AddDate(0, 0, -5),
				Status:      grading.StatusSubmitted,
			}),
			want: false,
		},
		{
			name:    "scenario: six graded averaging 91.5 rounds to 92",
			subs:    gradedSubs(30, 95, 92, 90, 88, 91, 93),
			want:    true,
			wantAvg: 92,
			wantCnt: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			award, ok := evalTopPerformer(tt.subs, evalNow)
			if ok != tt.want {
				t.Fatalf("evalTopPerformer() ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if award.Type != TypeTopPerformer {
				t.Errorf("Type = %q, want %q", award.Type, TypeTopPerformer)
			}
			if got := award.Details["average_grade"]; got != tt.wantAvg {
				t.Errorf("Details[average_grade] = %d, want %d", got, tt.wantAvg)
			}
			if got := award.Details["graded_count"]; got != tt.wantCnt {
				t.Errorf("Details[graded_count] = %d, want %d", got, tt.wantCnt)
			}
			if want := evalNow.AddDate(0, 0, -topPerformerWindowDays); !award.PeriodStart.Equal(want) {
				t.Errorf("PeriodStart = %v, want %v", award.PeriodStart, want)
			}
			if !award.PeriodEnd.Equal(evalNow) || !award.AwardedAt.Equal(evalNow) {
				t.Errorf("PeriodEnd/AwardedAt = %v/%v, want %v", award.PeriodEnd, award.AwardedAt, evalNow)
			}
		})
	}
}

func Test_evalPerfectAttendance(t *testing.T) {
	tests := []struct {
		name       string
		daysActive int
		want       bool
	}{
		{name: "exactly 25 is eligible", daysActive: 25, want: true},
		{name: "24 is not eligible", daysActive: 24, want: false},
		{name: "zero is not eligible", daysActive: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			award, ok := evalPerfectAttendance(tt.daysActive, evalNow)
			if ok != tt.want {
				t.Fatalf("evalPerfectAttendance() ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if got := award.Details["days_active"]; got != tt.daysActive {
				t.Errorf("Details[days_active] = %d, want %d", got, tt.daysActive)
			}
			if want := evalNow.AddDate(0, 0, -perfectAttendanceWindowDays); !award.PeriodStart.Equal(want) {
				t.Errorf("PeriodStart = %v, want %v", award.PeriodStart, want)
			}
		})
	}
}

func Test_evalHomeworkHero(t *testing.T) {
	dueLater := grading.Assignment{ID: "assignment", DueDate: evalNow.AddDate(0, 0, 1)}
	duePast := grading.Assignment{ID: "assignment", DueDate: evalNow.AddDate(0, 0, -45)}
	known := map[string]grading.Assignment{"assignment": dueLater}

	tests := []struct {
		name        string
		subs        []grading.Submission
		assignments map[string]grading.Assignment
		want        bool
		wantRate    int
		wantCons    int
	}{
		{
			name:        "five on-time graded at 85 are eligible",
			subs:        gradedSubs(10, 85, 85, 85, 85, 85),
			assignments: known,
			want:        true,
			wantRate:    100,
			wantCons:    5,
		},
		{
			name:        "grades below 85 never match",
			subs:        gradedSubs(10, 84, 84, 84, 84, 84),
			assignments: known,
			want:        false,
		},
		{
			name:        "fewer than 5 considered is not eligible",
			subs:        gradedSubs(10, 95, 95, 95, 95),
			assignments: known,
			want:        false,
		},
		{
			name:        "unknown assignments are not considered",
			subs:        gradedSubs(10, 95, 95, 95, 95, 95),
			assignments: map[string]grading.Assignment{},
			want:        false,
		},
		{
			name:        "late submissions count against the rate",
			subs:        gradedSubs(10, 95, 95, 95, 95, 95),
			assignments: map[string]grading.Assignment{"assignment": duePast},
			want:        false,
		},
		{
			name: "rate of exactly 90 is eligible",
			// 18 of 20 match: 100*18/20 = 90
			subs:        append(gradedSubs(10, 84, 84), gradedSubs(10, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95, 95)...),
			assignments: known,
			want:        true,
			wantRate:    90,
			wantCons:    20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			award, ok := evalHomeworkHero(tt.subs, tt.assignments, evalNow)
			if ok != tt.want {
				t.Fatalf("evalHomeworkHero() ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if got := award.Details["on_time_rate"]; got != tt.wantRate {
				t.Errorf("Details[on_time_rate] = %d, want %d", got, tt.wantRate)
			}
			if got := award.Details["considered"]; got != tt.wantCons {
				t.Errorf("Details[considered] = %d, want %d", got, tt.wantCons)
			}
		})
	}
}

func Test_roundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{89.4, 89},
		{89.5, 90},
		{90.0, 90},
		{91.5, 92},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
