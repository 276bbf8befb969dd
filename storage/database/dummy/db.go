// Package dummydb provides in-memory repository implementations for tests and
// local development without a live database.
package dummydb

import (
	"sync"

	"github.com/tsegazeab/timhirt/core/attendance"
	"github.com/tsegazeab/timhirt/core/certificate"
	"github.com/tsegazeab/timhirt/core/grading"
	"github.com/tsegazeab/timhirt/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User
	}

	attendanceTable struct {
		mutex sync.RWMutex
		table map[string]*attendance.Record
	}

	assignmentTable struct {
		mutex sync.RWMutex
		table map[string]*grading.Assignment
	}

	submissionTable struct {
		mutex sync.RWMutex
		table map[string]*grading.Submission
	}

	awardTable struct {
		mutex sync.RWMutex
		table map[string]*certificate.Award
	}

	DB struct {
		user       *userTable
		attendance *attendanceTable
		assignment *assignmentTable
		submission *submissionTable
		award      *awardTable
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		attendance: &attendanceTable{table: make(map[string]*attendance.Record)},
		assignment: &assignmentTable{table: make(map[string]*grading.Assignment)},
		submission: &submissionTable{table: make(map[string]*grading.Submission)},
		award:      &awardTable{table: make(map[string]*certificate.Award)},
	}
	return db, nil
}
