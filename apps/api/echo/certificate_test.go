package echoapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/tsegazeab/timhirt/core/attendance"
	"github.com/tsegazeab/timhirt/core/user"
)

func Test_certificateApi_query(t *testing.T) {
	env := setupServer(t)

	student := createUser(t, env.usrRepo, "Student", "student", "student@test.et", "pwd", user.StudentRoles, true)
	other := createUser(t, env.usrRepo, "Other", "otherstudent", "other@test.et", "pwd", user.StudentRoles, true)

	path := fmt.Sprintf("/v1/students/%s/certificates", student.ID)

	tests := []httpTest{
		{name: "auth required", method: http.MethodGet, path: path,
			wantCode: http.StatusUnauthorized},
		{name: "no awards yet", method: http.MethodGet, path: path,
			token: getToken(t, student), wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "other student cannot peek", method: http.MethodGet, path: path,
			token: getToken(t, other), wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_certificateApi_evaluate(t *testing.T) {
	env := setupServer(t)

	teacher := createUser(t, env.usrRepo, "Teacher", "teacher", "teacher@test.et", "pwd", user.TeacherRoles, true)
	student := createUser(t, env.usrRepo, "Student", "student", "student@test.et", "pwd", user.StudentRoles, true)

	// 30 consecutive present days ending today earns perfect-attendance
	present := true
	now := time.Now().UTC()
	for i := 0; i < 30; i++ {
		md := attendance.MarkDay{
			StudentID: student.ID,
			CourseID:  "math-101",
			Date:      now.AddDate(0, 0, -i),
			Present:   &present,
		}
		if _, err := env.attSvc.Mark(md, teacher.ID); err != nil {
			t.Fatalf("Mark() failed: %v", err)
		}
	}

	path := fmt.Sprintf("/v1/students/%s/certificates/evaluate", student.ID)

	t.Run("student cannot trigger evaluation", func(t *testing.T) {
		tt := httpTest{method: http.MethodPost, path: path, token: getToken(t, student), wantCode: http.StatusForbidden}
		checkCodeAndData(t, tt, env.do(tt))
	})

	t.Run("unknown student", func(t *testing.T) {
		tt := httpTest{
			method: http.MethodPost, path: "/v1/students/nope/certificates/evaluate",
			token: getToken(t, teacher), wantCode: http.StatusNotFound,
		}
		checkCodeAndData(t, tt, env.do(tt))
	})

	t.Run("teacher triggers evaluation", func(t *testing.T) {
		tt := httpTest{method: http.MethodPost, path: path, token: getToken(t, teacher), wantCode: http.StatusOK}
		rec := env.do(tt)
		checkCodeAndData(t, tt, rec)

		awards, err := env.certSvc.QueryStudent(student.ID)
		if err != nil {
			t.Fatalf("QueryStudent() failed: %v", err)
		}
		if len(awards) != 1 {
			t.Fatalf("QueryStudent() len = %d, want 1", len(awards))
		}
		if awards[0].Type != "perfect-attendance" {
			t.Errorf("award type = %s, want perfect-attendance", awards[0].Type)
		}
		if awards[0].Details["days_active"] != 30 {
			t.Errorf("days_active = %d, want 30", awards[0].Details["days_active"])
		}
	})
}
