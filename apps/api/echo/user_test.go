package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/tsegazeab/timhirt/core/user"
)

func Test_userApi_login(t *testing.T) {
	env := setupServer(t)

	createUser(t, env.usrRepo, "Active", "activeuser", "active@test.et", "s3cr3t", user.StudentRoles, true)
	createUser(t, env.usrRepo, "Inactive", "inactiveuser", "inactive@test.et", "s3cr3t", user.StudentRoles, false)

	tests := []httpTest{
		{name: "empty body", method: http.MethodPost, path: "/v1/users/login",
			body: []byte(`{}`), wantCode: http.StatusBadRequest},
		{name: "unknown user", method: http.MethodPost, path: "/v1/users/login",
			body:     []byte(`{"username":"ghost","password":"s3cr3t"}`),
			wantCode: http.StatusBadRequest},
		{name: "wrong password", method: http.MethodPost, path: "/v1/users/login",
			body:     []byte(`{"username":"activeuser","password":"nope"}`),
			wantCode: http.StatusBadRequest},
		{name: "deactivated account", method: http.MethodPost, path: "/v1/users/login",
			body:     []byte(`{"username":"inactiveuser","password":"s3cr3t"}`),
			wantCode: http.StatusForbidden},
		{name: "login with username", method: http.MethodPost, path: "/v1/users/login",
			body:     []byte(`{"username":"activeuser","password":"s3cr3t"}`),
			wantCode: http.StatusOK},
		{name: "login with email", method: http.MethodPost, path: "/v1/users/login",
			body:     []byte(`{"username":"active@test.et","password":"s3cr3t"}`),
			wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var res LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshalling LoginResponse: %v", err)
				}
				if res.Token == "" {
					t.Error("login returned an empty token")
				}
			}
		})
	}
}

func Test_userApi_retrieve(t *testing.T) {
	env := setupServer(t)

	admin := createUser(t, env.usrRepo, "Admin", "adminuser", "admin@test.et", "s3cr3t", user.AdminRoles, true)
	student := createUser(t, env.usrRepo, "Student", "studentuser", "student@test.et", "s3cr3t", user.StudentRoles, true)

	tests := []httpTest{
		{name: "student sees self", method: http.MethodGet,
			path:  fmt.Sprintf("/v1/users/%s", student.ID),
			token: getToken(t, student), wantCode: http.StatusOK,
			wantData: marshallObj(t, student)},
		{name: "student cannot see others", method: http.MethodGet,
			path:  fmt.Sprintf("/v1/users/%s", admin.ID),
			token: getToken(t, student), wantCode: http.StatusNotFound},
		{name: "admin sees anyone", method: http.MethodGet,
			path:  fmt.Sprintf("/v1/users/%s", student.ID),
			token: getToken(t, admin), wantCode: http.StatusOK,
			wantData: marshallObj(t, student)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_register(t *testing.T) {
	env := setupServer(t)

	admin := createUser(t, env.usrRepo, "Admin", "adminuser", "admin@test.et", "s3cr3t", user.AdminRoles, true)
	student := createUser(t, env.usrRepo, "Student", "studentuser", "student@test.et", "s3cr3t", user.StudentRoles, true)

	body := []byte(`{"name":"New Student","username":"newstudent","email":"new@test.et",` +
		`"password":"s3cr3t","password_confirm":"s3cr3t","roles":["student:"]}`)

	tests := []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/v1/users/register",
			body: body, wantCode: http.StatusUnauthorized},
		{name: "student forbidden", method: http.MethodPost, path: "/v1/users/register",
			body: body, token: getToken(t, student), wantCode: http.StatusForbidden},
		{name: "admin creates user", method: http.MethodPost, path: "/v1/users/register",
			body: body, token: getToken(t, admin), wantCode: http.StatusCreated},
		{name: "duplicate username", method: http.MethodPost, path: "/v1/users/register",
			body: body, token: getToken(t, admin), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt)
			checkCodeAndData(t, tt, rec)
		})
	}

	usr, err := env.usrRepo.GetUserByUsername("newstudent")
	if err != nil {
		t.Fatalf("GetUserByUsername() failed: %v", err)
	}
	if !usr.IsActive {
		t.Error("created user should be active")
	}
}
