package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("attendance record not found")
)

type (
	Repository interface {
		// UpsertRecord creates the record, or replaces the existing record for
		// the same (student, course, day).
		UpsertRecord(rec Record) (Record, error)
		// FilterRecords applies AND operation on available QueryFilter fields.
		// From and To bound Record.Date inclusively.
		FilterRecords(filter QueryFilter) ([]Record, error)
	}

	Service interface {
		Mark(md MarkDay, markedBy string) (Record, error)
		// Sheet returns the sparse day map of one student+course for the month
		// containing the given day.
		Sheet(studentID, courseID string, monthOf time.Time) (DayMap, error)
		// ActiveDays counts the student's distinct present days across all
		// courses within the trailing window ending at asOf.
		ActiveDays(studentID string, windowDays int, asOf time.Time) (int, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Mark(md MarkDay, markedBy string) (Record, error) {
	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.New().String(),
		StudentID: md.StudentID,
		CourseID:  md.CourseID,
		Date:      dateOf(md.Date),
		Present:   *md.Present,
		MarkedBy:  markedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.UpsertRecord(rec)
}

func (svc *service) Sheet(studentID, courseID string, monthOf time.Time) (DayMap, error) {
	y, m, _ := monthOf.UTC().Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	recs, err := svc.repo.FilterRecords(QueryFilter{
		StudentID: studentID,
		CourseID:  courseID,
		From:      first,
		To:        last,
	})
	if err != nil {
		return nil, errors.Wrap(err, "filtering attendance records")
	}

	sheet := make(DayMap, len(recs))
	for _, rec := range recs {
		sheet[rec.Date.Day()] = rec.Present
	}
	return sheet, nil
}

func (svc *service) ActiveDays(studentID string, windowDays int, asOf time.Time) (int, error) {
	end := dateOf(asOf)
	recs, err := svc.repo.FilterRecords(QueryFilter{
		StudentID: studentID,
		From:      end.AddDate(0, 0, -windowDays),
		To:        end,
	})
	if err != nil {
		return 0, errors.Wrap(err, "filtering attendance records")
	}

	days := make([]DayRecord, 0, len(recs))
	for _, rec := range recs {
		days = append(days, DayRecord{Date: rec.Date, Present: rec.Present})
	}
	return CountActiveDays(days, windowDays, asOf), nil
}
