package dummydb

import (
	"fmt"

	"github.com/tsegazeab/timhirt/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

// dayKey identifies the one record per (student, course, day).
func dayKey(rec attendance.Record) string {
	return fmt.Sprintf("%s|%s|%s", rec.StudentID, rec.CourseID, rec.Date.Format("2006-01-02"))
}

func (repo *attendanceRepository) UpsertRecord(rec attendance.Record) (attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	key := dayKey(rec)
	if orig, ok := repo.db.table[key]; ok {
		rec.ID = orig.ID
		rec.CreatedAt = orig.CreatedAt
	}
	repo.db.table[key] = &rec
	return rec, nil
}

func (repo *attendanceRepository) FilterRecords(filter attendance.QueryFilter) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	recs := make([]attendance.Record, 0)
	for _, rec := range repo.db.table {
		if filter.StudentID != "" && rec.StudentID != filter.StudentID {
			continue
		}
		if filter.CourseID != "" && rec.CourseID != filter.CourseID {
			continue
		}
		if !filter.From.IsZero() && rec.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && rec.Date.After(filter.To) {
			continue
		}
		recs = append(recs, *rec)
	}
	return recs, nil
}
