package sqlxrepos

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tsegazeab/timhirt/core/certificate"
)

// awardDetails stores Award.Details as a jsonb column.
type awardDetails map[string]int

func (d awardDetails) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *awardDetails) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.Errorf("scanning award details: unexpected type %T", src)
	}
	return json.Unmarshal(b, d)
}

type dbAward struct {
	ID          string       `db:"id"`
	StudentID   string       `db:"student_id"`
	Type        string       `db:"type"`
	AwardedAt   time.Time    `db:"awarded_at"`
	PeriodStart time.Time    `db:"period_start"`
	PeriodEnd   time.Time    `db:"period_end"`
	Details     awardDetails `db:"details"`
	CreatedAt   time.Time    `db:"created_at"`
}

func (da dbAward) toAward() certificate.Award {
	return certificate.Award{
		ID:          da.ID,
		StudentID:   da.StudentID,
		Type:        da.Type,
		AwardedAt:   da.AwardedAt,
		PeriodStart: da.PeriodStart,
		PeriodEnd:   da.PeriodEnd,
		Details:     da.Details,
		CreatedAt:   da.CreatedAt,
	}
}

type certificateRepository struct {
	db *sqlx.DB
}

var _ certificate.Repository = (*certificateRepository)(nil)

func NewCertificateRepository(db *sqlx.DB) certificate.Repository {
	return &certificateRepository{db: db}
}

func (repo *certificateRepository) CreateAward(a certificate.Award) (certificate.Award, error) {
	query := `
INSERT INTO certificate_award (id, student_id, type, awarded_at, period_start, period_end, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.db.Exec(query,
		a.ID, a.StudentID, a.Type, a.AwardedAt, a.PeriodStart, a.PeriodEnd,
		awardDetails(a.Details), a.CreatedAt,
	)
	if err != nil {
		return certificate.Award{}, errors.Wrap(err, "creating certificate award")
	}
	return a, nil
}

func (repo *certificateRepository) QueryStudentAwards(studentID string) ([]certificate.Award, error) {
	var dbAwards []dbAward
	query := `SELECT * FROM certificate_award WHERE student_id = $1 ORDER BY awarded_at DESC`
	if err := repo.db.Select(&dbAwards, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying student awards")
	}

	awards := make([]certificate.Award, 0, len(dbAwards))
	for _, da := range dbAwards {
		awards = append(awards, da.toAward())
	}
	return awards, nil
}
