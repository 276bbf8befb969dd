package echoapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/tsegazeab/timhirt/core/attendance"
	"github.com/tsegazeab/timhirt/core/user"
)

func Test_attendanceApi_mark(t *testing.T) {
	env := setupServer(t)

	teacher := createUser(t, env.usrRepo, "Teacher", "teacher", "teacher@test.et", "pwd", user.TeacherRoles, true)
	student := createUser(t, env.usrRepo, "Student", "student", "student@test.et", "pwd", user.StudentRoles, true)

	body := []byte(fmt.Sprintf(
		`{"student_id":%q,"course_id":"math-101","date":"2024-03-04T00:00:00Z","present":true}`, student.ID))

	tests := []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/v1/attendance", body: body,
			wantCode: http.StatusUnauthorized},
		{name: "student forbidden", method: http.MethodPost, path: "/v1/attendance", body: body,
			token: getToken(t, student), wantCode: http.StatusForbidden},
		{name: "teacher marks present", method: http.MethodPost, path: "/v1/attendance", body: body,
			token: getToken(t, teacher), wantCode: http.StatusCreated},
		{name: "missing fields", method: http.MethodPost, path: "/v1/attendance",
			body:  []byte(`{"student_id":"x"}`),
			token: getToken(t, teacher), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_attendanceApi_sheet(t *testing.T) {
	env := setupServer(t)

	teacher := createUser(t, env.usrRepo, "Teacher", "teacher", "teacher@test.et", "pwd", user.TeacherRoles, true)
	student := createUser(t, env.usrRepo, "Student", "student", "student@test.et", "pwd", user.StudentRoles, true)
	other := createUser(t, env.usrRepo, "Other", "otherstudent", "other@test.et", "pwd", user.StudentRoles, true)

	mark := func(day int, present bool) {
		md := attendance.MarkDay{
			StudentID: student.ID,
			CourseID:  "math-101",
			Date:      time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
			Present:   &present,
		}
		if _, err := env.attSvc.Mark(md, teacher.ID); err != nil {
			t.Fatalf("Mark() failed: %v", err)
		}
	}
	mark(4, true)
	mark(5, false)
	mark(7, true)

	path := fmt.Sprintf("/v1/students/%s/attendance/sheet?course_id=math-101&month=2024-03", student.ID)
	wantData := []byte(fmt.Sprintf(
		`{"student_id":%q,"course_id":"math-101","month":"2024-03","days":{"4":true,"5":false,"7":true}}`, student.ID))

	tests := []httpTest{
		{name: "student sees own sheet", method: http.MethodGet, path: path,
			token: getToken(t, student), wantCode: http.StatusOK, wantData: wantData},
		{name: "teacher sees any sheet", method: http.MethodGet, path: path,
			token: getToken(t, teacher), wantCode: http.StatusOK, wantData: wantData},
		{name: "other student cannot peek", method: http.MethodGet, path: path,
			token: getToken(t, other), wantCode: http.StatusNotFound},
		{name: "course_id required", method: http.MethodGet,
			path:  fmt.Sprintf("/v1/students/%s/attendance/sheet", student.ID),
			token: getToken(t, student), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_attendanceApi_activeDays(t *testing.T) {
	env := setupServer(t)

	teacher := createUser(t, env.usrRepo, "Teacher", "teacher", "teacher@test.et", "pwd", user.TeacherRoles, true)
	student := createUser(t, env.usrRepo, "Student", "student", "student@test.et", "pwd", user.StudentRoles, true)

	present := true
	for day := 1; day <= 10; day++ {
		md := attendance.MarkDay{
			StudentID: student.ID,
			CourseID:  "math-101",
			Date:      time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
			Present:   &present,
		}
		if _, err := env.attSvc.Mark(md, teacher.ID); err != nil {
			t.Fatalf("Mark() failed: %v", err)
		}
	}

	tt := httpTest{
		method: http.MethodGet,
		path:   fmt.Sprintf("/v1/students/%s/attendance/active-days?window=30&as_of=2024-03-15", student.ID),
		token:  getToken(t, student), wantCode: http.StatusOK,
		wantData: []byte(fmt.Sprintf(
			`{"student_id":%q,"window_days":30,"as_of":"2024-03-15","days_active":10}`, student.ID)),
	}
	rec := env.do(tt)
	checkCodeAndData(t, tt, rec)
}
