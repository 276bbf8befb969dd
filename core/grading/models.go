package grading

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/tsegazeab/timhirt/core"
)

// Submission statuses
const (
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
)

type Assignment struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"due_date"` // UTC
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Submission struct {
	ID           string       `json:"id"`
	StudentID    string       `json:"student_id"`
	AssignmentID string       `json:"assignment_id"`
	SubmittedAt  time.Time    `json:"submitted_at"` // UTC
	Status       string       `json:"status"`
	Grade        null.Float64 `json:"grade"` // set once graded
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (s Submission) IsGraded() bool {
	return s.Status == StatusGraded && s.Grade.Valid
}

// NewAssignment contains information needed to create an Assignment.
type NewAssignment struct {
	CourseID string    `json:"course_id" validate:"required"`
	Title    string    `json:"title" validate:"required"`
	DueDate  time.Time `json:"due_date" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.CourseID = core.CleanString(na.CourseID)
	na.Title = core.CleanString(na.Title)
	return validate.Struct(na)
}

// NewSubmission contains information needed to record a student's submission.
type NewSubmission struct {
	StudentID    string `json:"student_id" validate:"required"`
	AssignmentID string `json:"assignment_id" validate:"required"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	ns.StudentID = core.CleanString(ns.StudentID)
	ns.AssignmentID = core.CleanString(ns.AssignmentID)
	return validate.Struct(ns)
}

// GradeSubmission contains the grade awarded to a submission.
type GradeSubmission struct {
	Grade float64 `json:"grade" validate:"min=0,max=100"`
}

func (gs GradeSubmission) Validate(validate *validator.Validate) error {
	return validate.Struct(gs)
}

type QueryFilter struct {
	StudentID     string    `query:"student_id"`
	AssignmentID  string    `query:"assignment_id"`
	Status        string    `query:"status"`
	SubmittedFrom time.Time `query:"submitted_from"`
	SubmittedTo   time.Time `query:"submitted_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.StudentID == "" && qf.AssignmentID == "" && qf.Status == "" &&
		qf.SubmittedFrom.IsZero() && qf.SubmittedTo.IsZero()
}
