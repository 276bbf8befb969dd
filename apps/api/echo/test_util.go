package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"

	"github.com/tsegazeab/timhirt/core"
	"github.com/tsegazeab/timhirt/core/attendance"
	"github.com/tsegazeab/timhirt/core/certificate"
	"github.com/tsegazeab/timhirt/core/grading"
	"github.com/tsegazeab/timhirt/core/user"
	emailsvc "github.com/tsegazeab/timhirt/services/email"
	dummydb "github.com/tsegazeab/timhirt/storage/database/dummy"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

type testEnv struct {
	server  Server
	conf    *core.Config
	usrRepo user.Repository
	attSvc  attendance.Service
	gradSvc grading.Service
	certSvc certificate.Service
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setupServer() failed: %v", err)
	}

	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrRepo := dummydb.NewUserRepository(db)
	usrSvc := user.NewServiceMock(usrRepo, mailSvc, conf)
	attSvc := attendance.NewService(dummydb.NewAttendanceRepository(db))
	gradSvc := grading.NewService(dummydb.NewGradingRepository(db))
	certSvc := certificate.NewService(
		dummydb.NewCertificateRepository(db),
		gradSvc,
		attSvc,
		usrSvc,
		mailSvc,
		testLogger{},
	)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	server := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testLogger{},
		Validate:       validate,
		Translator:     translator,
		UserSvc:        usrSvc,
		AttendanceSvc:  attSvc,
		GradingSvc:     gradSvc,
		CertificateSvc: certSvc,
	})

	return &testEnv{
		server:  server,
		conf:    conf,
		usrRepo: usrRepo,
		attSvc:  attSvc,
		gradSvc: gradSvc,
		certSvc: certSvc,
	}
}

func createUser(t *testing.T, repo user.Repository, name, uname, email, pwd string, roles []string, isActive bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func (env *testEnv) do(tt httpTest) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if tt.body != nil {
		body.Write(tt.body)
	}
	req := httptest.NewRequest(tt.method, tt.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if tt.token != "" {
		req.Header.Set("Authorization", "Bearer "+tt.token)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) bool {
	t.Helper()

	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	if reflect.DeepEqual(j1, j2) {
		return true
	}
	if l1, ok := j1.([]interface{}); ok {
		if l2, ok := j2.([]interface{}); ok {
			return assert.ElementsMatch(t, l1, l2)
		}
	}
	return false
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	if !jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(tt.wantData)),
			B:        difflib.SplitLines(rec.Body.String()),
			FromFile: "want",
			ToFile:   "got",
			Context:  2,
		})
		t.Errorf("failed! unexpected response body:\n%s", diff)
	}
}
