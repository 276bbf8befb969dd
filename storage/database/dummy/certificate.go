package dummydb

import (
	"github.com/tsegazeab/timhirt/core/certificate"
)

type certificateRepository struct {
	db *awardTable
}

var _ certificate.Repository = (*certificateRepository)(nil)

func NewCertificateRepository(db *DB) certificate.Repository {
	return &certificateRepository{db: db.award}
}

func (repo *certificateRepository) CreateAward(a certificate.Award) (certificate.Award, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *certificateRepository) QueryStudentAwards(studentID string) ([]certificate.Award, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	awards := make([]certificate.Award, 0)
	for _, a := range repo.db.table {
		if a.StudentID == studentID {
			awards = append(awards, *a)
		}
	}
	return awards, nil
}
