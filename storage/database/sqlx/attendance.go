package sqlxrepos

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core/attendance"
)

type dbAttendanceRecord struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	CourseID  string    `db:"course_id"`
	Date      time.Time `db:"date"`
	Present   bool      `db:"present"`
	MarkedBy  string    `db:"marked_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (dr dbAttendanceRecord) toRecord() attendance.Record {
	return attendance.Record{
		ID:        dr.ID,
		StudentID: dr.StudentID,
		CourseID:  dr.CourseID,
		Date:      dr.Date,
		Present:   dr.Present,
		MarkedBy:  dr.MarkedBy,
		CreatedAt: dr.CreatedAt,
		UpdatedAt: dr.UpdatedAt,
	}
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) UpsertRecord(rec attendance.Record) (attendance.Record, error) {
	query := `
INSERT INTO attendance_record (id, student_id, course_id, date, present, marked_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (student_id, course_id, date) DO UPDATE SET
    present    = EXCLUDED.present,
    marked_by  = EXCLUDED.marked_by,
    updated_at = EXCLUDED.updated_at
RETURNING *`

	var dr dbAttendanceRecord
	err := repo.db.Get(&dr, query,
		rec.ID, rec.StudentID, rec.CourseID, rec.Date, rec.Present,
		rec.MarkedBy, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "upserting attendance record")
	}
	return dr.toRecord(), nil
}

func (repo *attendanceRepository) FilterRecords(filter attendance.QueryFilter) ([]attendance.Record, error) {
	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.StudentID != "" {
		conds = append(conds, fmt.Sprintf("student_id = %s", arg(filter.StudentID)))
	}
	if filter.CourseID != "" {
		conds = append(conds, fmt.Sprintf("course_id = %s", arg(filter.CourseID)))
	}
	if !filter.From.IsZero() {
		conds = append(conds, fmt.Sprintf("date >= %s", arg(filter.From)))
	}
	if !filter.To.IsZero() {
		conds = append(conds, fmt.Sprintf("date <= %s", arg(filter.To)))
	}

	query := `SELECT * FROM attendance_record`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date"

	var dbRecs []dbAttendanceRecord
	if err := repo.db.Select(&dbRecs, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering attendance records")
	}

	recs := make([]attendance.Record, 0, len(dbRecs))
	for _, dr := range dbRecs {
		recs = append(recs, dr.toRecord())
	}
	return recs, nil
}
