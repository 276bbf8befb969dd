package dummydb

import (
	"github.com/tsegazeab/timhirt/core/grading"
)

type gradingRepository struct {
	assignments *assignmentTable
	submissions *submissionTable
}

var _ grading.Repository = (*gradingRepository)(nil)

func NewGradingRepository(db *DB) grading.Repository {
	return &gradingRepository{
		assignments: db.assignment,
		submissions: db.submission,
	}
}

func (repo *gradingRepository) CreateAssignment(a grading.Assignment) (grading.Assignment, error) {
	repo.assignments.mutex.Lock()
	defer repo.assignments.mutex.Unlock()

	repo.assignments.table[a.ID] = &a
	return a, nil
}

func (repo *gradingRepository) GetAssignmentByID(id string) (grading.Assignment, error) {
	repo.assignments.mutex.RLock()
	defer repo.assignments.mutex.RUnlock()

	if a, ok := repo.assignments.table[id]; ok {
		return *a, nil
	}
	return grading.Assignment{}, grading.ErrAssignmentNotFound
}

func (repo *gradingRepository) GetAssignmentsByID(ids ...string) (map[string]grading.Assignment, error) {
	repo.assignments.mutex.RLock()
	defer repo.assignments.mutex.RUnlock()

	found := make(map[string]grading.Assignment, len(ids))
	for _, id := range ids {
		if a, ok := repo.assignments.table[id]; ok {
			found[id] = *a
		}
	}
	return found, nil
}

func (repo *gradingRepository) QueryCourseAssignments(courseID string) ([]grading.Assignment, error) {
	repo.assignments.mutex.RLock()
	defer repo.assignments.mutex.RUnlock()

	assignments := make([]grading.Assignment, 0)
	for _, a := range repo.assignments.table {
		if a.CourseID == courseID {
			assignments = append(assignments, *a)
		}
	}
	return assignments, nil
}

func (repo *gradingRepository) CreateSubmission(s grading.Submission) (grading.Submission, error) {
	repo.submissions.mutex.Lock()
	defer repo.submissions.mutex.Unlock()

	repo.submissions.table[s.ID] = &s
	return s, nil
}

func (repo *gradingRepository) GetSubmissionByID(id string) (grading.Submission, error) {
	repo.submissions.mutex.RLock()
	defer repo.submissions.mutex.RUnlock()

	if s, ok := repo.submissions.table[id]; ok {
		return *s, nil
	}
	return grading.Submission{}, grading.ErrSubmissionNotFound
}

func (repo *gradingRepository) FilterSubmissions(filter grading.QueryFilter) ([]grading.Submission, error) {
	repo.submissions.mutex.RLock()
	defer repo.submissions.mutex.RUnlock()

	subs := make([]grading.Submission, 0)
	for _, s := range repo.submissions.table {
		if filter.StudentID != "" && s.StudentID != filter.StudentID {
			continue
		}
		if filter.AssignmentID != "" && s.AssignmentID != filter.AssignmentID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if !filter.SubmittedFrom.IsZero() && s.SubmittedAt.Before(filter.SubmittedFrom) {
			continue
		}
		if !filter.SubmittedTo.IsZero() && s.SubmittedAt.After(filter.SubmittedTo) {
			continue
		}
		subs = append(subs, *s)
	}
	return subs, nil
}

func (repo *gradingRepository) UpdateSubmission(s grading.Submission) (grading.Submission, error) {
	repo.submissions.mutex.Lock()
	defer repo.submissions.mutex.Unlock()

	if _, ok := repo.submissions.table[s.ID]; !ok {
		return grading.Submission{}, grading.ErrSubmissionNotFound
	}
	repo.submissions.table[s.ID] = &s
	return s, nil
}
