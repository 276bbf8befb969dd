package grading_test

import (
	"testing"
	"time"

	"github.com/tsegazeab/timhirt/core/grading"
	dummydb "github.com/tsegazeab/timhirt/storage/database/dummy"
)

func setup(t *testing.T) grading.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return grading.NewService(dummydb.NewGradingRepository(db))
}

func TestService_SubmitAndGrade(t *testing.T) {
	svc := setup(t)

	a, err := svc.CreateAssignment(grading.NewAssignment{
		CourseID: "math",
		Title:    "Problem set 3",
		DueDate:  time.Now().UTC().AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() error = %v", err)
	}

	sub, err := svc.Submit(grading.NewSubmission{StudentID: "student-1", AssignmentID: a.ID})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sub.Status != grading.StatusSubmitted {
		t.Errorf("Submit() status = %q, want %q", sub.Status, grading.StatusSubmitted)
	}
	if sub.IsGraded() {
		t.Error("Submit() must not produce a graded submission")
	}

	graded, err := svc.Grade(sub.ID, grading.GradeSubmission{Grade: 91})
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !graded.IsGraded() {
		t.Error("Grade() must produce a graded submission")
	}
	if got := graded.Grade.Float64; got != 91 {
		t.Errorf("Grade() grade = %v, want 91", got)
	}
}

func TestService_Submit_unknownAssignment(t *testing.T) {
	svc := setup(t)

	_, err := svc.Submit(grading.NewSubmission{StudentID: "student-1", AssignmentID: "nope"})
	if err != grading.ErrAssignmentNotFound {
		t.Errorf("Submit() error = %v, want %v", err, grading.ErrAssignmentNotFound)
	}
}

func TestService_FilterSubmissions_window(t *testing.T) {
	svc := setup(t)

	a, err := svc.CreateAssignment(grading.NewAssignment{
		CourseID: "math",
		Title:    "Problem set 4",
		DueDate:  time.Now().UTC().AddDate(0, 0, 7),
	})
	if err != nil {
		t.Fatalf("CreateAssignment() error = %v", err)
	}
	sub, err := svc.Submit(grading.NewSubmission{StudentID: "student-1", AssignmentID: a.ID})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	now := time.Now().UTC()
	got, err := svc.FilterSubmissions(grading.QueryFilter{
		StudentID:     "student-1",
		SubmittedFrom: now.AddDate(0, 0, -1),
		SubmittedTo:   now.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("FilterSubmissions() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != sub.ID {
		t.Errorf("FilterSubmissions() = %+v, want [%s]", got, sub.ID)
	}

	got, err = svc.FilterSubmissions(grading.QueryFilter{StudentID: "student-2"})
	if err != nil {
		t.Fatalf("FilterSubmissions() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("FilterSubmissions() for other student = %+v, want none", got)
	}
}
