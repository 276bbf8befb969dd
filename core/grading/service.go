package grading

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	// errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")
)

type (
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		GetAssignmentByID(id string) (Assignment, error)
		// GetAssignmentsByID returns the found assignments keyed by ID;
		// unknown IDs are simply absent from the result.
		GetAssignmentsByID(ids ...string) (map[string]Assignment, error)
		QueryCourseAssignments(courseID string) ([]Assignment, error)
		CreateSubmission(s Submission) (Submission, error)
		GetSubmissionByID(id string) (Submission, error)
		// FilterSubmissions applies AND operation on available QueryFilter
		// fields. SubmittedFrom and SubmittedTo bound SubmittedAt inclusively.
		FilterSubmissions(filter QueryFilter) ([]Submission, error)
		UpdateSubmission(s Submission) (Submission, error)
	}

	Service interface {
		CreateAssignment(na NewAssignment) (Assignment, error)
		GetAssignment(id string) (Assignment, error)
		GetAssignmentsByID(ids ...string) (map[string]Assignment, error)
		QueryCourseAssignments(courseID string) ([]Assignment, error)
		Submit(ns NewSubmission) (Submission, error)
		GetSubmission(id string) (Submission, error)
		Grade(submissionID string, gs GradeSubmission) (Submission, error)
		FilterSubmissions(filter QueryFilter) ([]Submission, error)
	}

	service struct {
		repo Repository
	}
)

var (
	_ Service = (*service)(nil)

	nowFunc = time.Now // mockable
)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CreateAssignment(na NewAssignment) (Assignment, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateAssignment(Assignment{
		ID:        uuid.New().String(),
		CourseID:  na.CourseID,
		Title:     na.Title,
		DueDate:   na.DueDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *service) GetAssignment(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

func (svc *service) GetAssignmentsByID(ids ...string) (map[string]Assignment, error) {
	return svc.repo.GetAssignmentsByID(ids...)
}

func (svc *service) QueryCourseAssignments(courseID string) ([]Assignment, error) {
	return svc.repo.QueryCourseAssignments(courseID)
}

func (svc *service) Submit(ns NewSubmission) (Submission, error) {
	if _, err := svc.repo.GetAssignmentByID(ns.AssignmentID); err != nil {
		return Submission{}, err
	}
	now := nowFunc().UTC()
	return svc.repo.CreateSubmission(Submission{
		ID:           uuid.New().String(),
		StudentID:    ns.StudentID,
		AssignmentID: ns.AssignmentID,
		SubmittedAt:  now,
		Status:       StatusSubmitted,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *service) GetSubmission(id string) (Submission, error) {
	return svc.repo.GetSubmissionByID(id)
}

func (svc *service) Grade(submissionID string, gs GradeSubmission) (Submission, error) {
	sub, err := svc.repo.GetSubmissionByID(submissionID)
	if err != nil {
		return Submission{}, err
	}
	sub.Status = StatusGraded
	sub.Grade = null.Float64From(gs.Grade)
	sub.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateSubmission(sub)
}

func (svc *service) FilterSubmissions(filter QueryFilter) ([]Submission, error) {
	return svc.repo.FilterSubmissions(filter)
}
