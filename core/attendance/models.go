package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tsegazeab/timhirt/core"
)

// Record is one stored attendance mark: a student, a course and a calendar day.
// Absence of a Record for a day means "no record", which is distinct from a
// Record with Present == false ("recorded absent").
type Record struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CourseID  string    `json:"course_id"`
	Date      time.Time `json:"date"` // calendar day, midnight UTC
	Present   bool      `json:"present"`
	MarkedBy  string    `json:"marked_by"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// DayRecord is the plain (date, present) pair consumed by CountActiveDays.
type DayRecord struct {
	Date    time.Time
	Present bool
}

// DayMap maps a day-of-month (1..31) to present/absent for one student+course
// within one month. Sparse: a missing key means "no record".
type DayMap map[int]bool

// MarkDay contains information needed to record attendance for one day.
type MarkDay struct {
	StudentID string    `json:"student_id" validate:"required"`
	CourseID  string    `json:"course_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Present   *bool     `json:"present" validate:"required"`
}

func (md *MarkDay) Validate(validate *validator.Validate) error {
	md.StudentID = core.CleanString(md.StudentID)
	md.CourseID = core.CleanString(md.CourseID)
	return validate.Struct(md)
}

type QueryFilter struct {
	StudentID string    `query:"student_id"`
	CourseID  string    `query:"course_id"`
	From      time.Time `query:"from"`
	To        time.Time `query:"to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == "" && qf.CourseID == "" && qf.From.IsZero() && qf.To.IsZero()
}
