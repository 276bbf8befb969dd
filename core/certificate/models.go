package certificate

import "time"

// Certificate types
const (
	TypeTopPerformer      = "top-performer"
	TypePerfectAttendance = "perfect-attendance"
	TypeHomeworkHero      = "homework-hero"
)

// Eligibility rule windows and thresholds. Thresholds are boundary-inclusive.
const (
	topPerformerWindowDays = 90
	minGradedCount         = 5
	minAverageGrade        = 90

	perfectAttendanceWindowDays = 30
	minActiveDays               = 25

	homeworkHeroWindowDays = 60
	minConsidered          = 5
	minOnTimeGrade         = 85
	minOnTimeRate          = 90
)

// Award is a minted certificate. It is created once by the evaluator and never
// mutated afterwards.
type Award struct {
	ID          string         `json:"id"`
	StudentID   string         `json:"student_id"`
	Type        string         `json:"type"`
	AwardedAt   time.Time      `json:"awarded_at"` // UTC
	PeriodStart time.Time      `json:"period_start"`
	PeriodEnd   time.Time      `json:"period_end"`
	Details     map[string]int `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}
