package sqlxrepos

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tsegazeab/timhirt/core/grading"
)

type dbAssignment struct {
	ID        string    `db:"id"`
	CourseID  string    `db:"course_id"`
	Title     string    `db:"title"`
	DueDate   time.Time `db:"due_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (da dbAssignment) toAssignment() grading.Assignment {
	return grading.Assignment{
		ID:        da.ID,
		CourseID:  da.CourseID,
		Title:     da.Title,
		DueDate:   da.DueDate,
		CreatedAt: da.CreatedAt,
		UpdatedAt: da.UpdatedAt,
	}
}

type dbSubmission struct {
	ID           string       `db:"id"`
	StudentID    string       `db:"student_id"`
	AssignmentID string       `db:"assignment_id"`
	SubmittedAt  time.Time    `db:"submitted_at"`
	Status       string       `db:"status"`
	Grade        null.Float64 `db:"grade"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

func (ds dbSubmission) toSubmission() grading.Submission {
	return grading.Submission{
		ID:           ds.ID,
		StudentID:    ds.StudentID,
		AssignmentID: ds.AssignmentID,
		SubmittedAt:  ds.SubmittedAt,
		Status:       ds.Status,
		Grade:        ds.Grade,
		CreatedAt:    ds.CreatedAt,
		UpdatedAt:    ds.UpdatedAt,
	}
}

type gradingRepository struct {
	db *sqlx.DB
}

var _ grading.Repository = (*gradingRepository)(nil)

func NewGradingRepository(db *sqlx.DB) grading.Repository {
	return &gradingRepository{db: db}
}

func (repo *gradingRepository) CreateAssignment(a grading.Assignment) (grading.Assignment, error) {
	query := `
INSERT INTO assignment (id, course_id, title, due_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := repo.db.Exec(query, a.ID, a.CourseID, a.Title, a.DueDate, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return grading.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return a, nil
}

func (repo *gradingRepository) GetAssignmentByID(id string) (grading.Assignment, error) {
	var da dbAssignment
	if err := repo.db.Get(&da, `SELECT * FROM assignment WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return grading.Assignment{}, grading.ErrAssignmentNotFound
		}
		return grading.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return da.toAssignment(), nil
}

func (repo *gradingRepository) GetAssignmentsByID(ids ...string) (map[string]grading.Assignment, error) {
	var dbAssignments []dbAssignment
	query := `SELECT * FROM assignment WHERE id = ANY($1)`
	if err := repo.db.Select(&dbAssignments, query, pq.Array(ids)); err != nil {
		return nil, errors.Wrap(err, "getting assignments")
	}

	assignments := make(map[string]grading.Assignment, len(dbAssignments))
	for _, da := range dbAssignments {
		assignments[da.ID] = da.toAssignment()
	}
	return assignments, nil
}

func (repo *gradingRepository) QueryCourseAssignments(courseID string) ([]grading.Assignment, error) {
	var dbAssignments []dbAssignment
	query := `SELECT * FROM assignment WHERE course_id = $1 ORDER BY due_date`
	if err := repo.db.Select(&dbAssignments, query, courseID); err != nil {
		return nil, errors.Wrap(err, "querying course assignments")
	}

	assignments := make([]grading.Assignment, 0, len(dbAssignments))
	for _, da := range dbAssignments {
		assignments = append(assignments, da.toAssignment())
	}
	return assignments, nil
}

func (repo *gradingRepository) CreateSubmission(s grading.Submission) (grading.Submission, error) {
	query := `
INSERT INTO submission (id, student_id, assignment_id, submitted_at, status, grade, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.Exec(query,
		s.ID, s.StudentID, s.AssignmentID, s.SubmittedAt, s.Status, s.Grade, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return grading.Submission{}, errors.Wrap(err, "creating submission")
	}
	return s, nil
}

func (repo *gradingRepository) GetSubmissionByID(id string) (grading.Submission, error) {
	var ds dbSubmission
	if err := repo.db.Get(&ds, `SELECT * FROM submission WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return grading.Submission{}, grading.ErrSubmissionNotFound
		}
		return grading.Submission{}, errors.Wrap(err, "getting submission")
	}
	return ds.toSubmission(), nil
}

func (repo *gradingRepository) FilterSubmissions(filter grading.QueryFilter) ([]grading.Submission, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.StudentID != "" {
		conds = append(conds, fmt.Sprintf("student_id = %s", arg(filter.StudentID)))
	}
	if filter.AssignmentID != "" {
		conds = append(conds, fmt.Sprintf("assignment_id = %s", arg(filter.AssignmentID)))
	}
	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("status = %s", arg(filter.Status)))
	}
	if !filter.SubmittedFrom.IsZero() {
		conds = append(conds, fmt.Sprintf("submitted_at >= %s", arg(filter.SubmittedFrom)))
	}
	if !filter.SubmittedTo.IsZero() {
		conds = append(conds, fmt.Sprintf("submitted_at <= %s", arg(filter.SubmittedTo)))
	}

	query := `SELECT * FROM submission`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY submitted_at"

	var dbSubs []dbSubmission
	if err := repo.db.Select(&dbSubs, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering submissions")
	}

	subs := make([]grading.Submission, 0, len(dbSubs))
	for _, ds := range dbSubs {
		subs = append(subs, ds.toSubmission())
	}
	return subs, nil
}

func (repo *gradingRepository) UpdateSubmission(s grading.Submission) (grading.Submission, error) {
	query := `
UPDATE submission SET
    status     = $2,
    grade      = $3,
    updated_at = $4
WHERE id = $1
RETURNING *`

	var ds dbSubmission
	if err := repo.db.Get(&ds, query, s.ID, s.Status, s.Grade, s.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return grading.Submission{}, grading.ErrSubmissionNotFound
		}
		return grading.Submission{}, errors.Wrap(err, "updating submission")
	}
	return ds.toSubmission(), nil
}
