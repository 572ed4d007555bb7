package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/CyberG247/digital-assignment-portal/core"
	"github.com/CyberG247/digital-assignment-portal/core/assignment"
	"github.com/CyberG247/digital-assignment-portal/core/student"
	inmemdb "github.com/CyberG247/digital-assignment-portal/storage/database/inmem"
	sessionstore "github.com/CyberG247/digital-assignment-portal/storage/session"
)

var (
	testSecretKey          = []byte("secret")
	testJWTExpirationDelta = 10 * time.Minute

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

// testLogger drops everything; handler tests assert on responses, not logs.
type testLogger struct{}

var _ core.Logger = (*testLogger)(nil)

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

func initApp(t *testing.T) (*echo.Echo, *Deps, assignment.Repository) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("initApp() failed: %v", err)
	}
	repo := inmemdb.NewAssignmentRepository(db)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	deps := &Deps{
		Logger:        testLogger{},
		AssignmentSvc: assignment.NewService(repo, validate),
		StudentSvc:    student.NewService(sessionstore.NewFileStore(t.TempDir()), validate),
		Translator:    translator,
	}

	app := echo.New()
	app.Pre(middleware.RemoveTrailingSlash())
	app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator, func() {})

	v1 := app.Group("/v1")
	jwt := ConfigureAuth("Test", testSecretKey, testJWTExpirationDelta)
	registerStudentAPI(v1, jwt, deps)
	registerAssignmentAPI(v1, jwt, deps)
	return app, deps, repo
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, s student.Student) string {
	token, err := GenerateToken(GetStudentClaims(s))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func unmarchallObj(t *testing.T, data []byte, obj interface{}) {
	if err := json.Unmarshal(data, obj); err != nil {
		t.Fatalf("unmarchallObj() failed: %v", err)
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) bool {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	return assert.ObjectsAreEqual(j1, j2)
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	if !jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData) {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
