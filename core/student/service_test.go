package student_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/CyberG247/digital-assignment-portal/core"
	"github.com/CyberG247/digital-assignment-portal/core/student"
	sessionstore "github.com/CyberG247/digital-assignment-portal/storage/session"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func fieldsOf(t *testing.T, err error) map[string]bool {
	vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
	if !ok {
		t.Fatalf("expected validator.ValidationErrors, got %v", err)
	}
	fields := make(map[string]bool, len(vErrs))
	for _, vErr := range vErrs {
		fields[vErr.Field()] = true
	}
	return fields
}

func TestService_Login(t *testing.T) {
	store := sessionstore.NewFileStore(t.TempDir())
	svc := student.NewService(store, newValidate())
	assert.False(t, svc.IsAuthenticated())

	s, err := svc.Login(student.NewLogin{Name: "  Ada Lovelace  ", StudentID: "STU001"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	assert.Equal(t, "Ada Lovelace", s.Name) // trimmed
	assert.Equal(t, "STU001", s.ID)
	assert.True(t, svc.IsAuthenticated())

	current, ok := svc.Current()
	assert.True(t, ok)
	assert.Equal(t, s, current)

	// only lengths are checked; the ID charset is free-form
	s, err = svc.Login(student.NewLogin{Name: "Grace Hopper", StudentID: "STU-001"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	assert.Equal(t, "STU-001", s.ID)
	assert.True(t, svc.IsAuthenticated())
}

func TestService_LoginValidation(t *testing.T) {
	store := sessionstore.NewFileStore(t.TempDir())
	svc := student.NewService(store, newValidate())

	// name is long enough but the student ID misses the 3 char minimum
	_, err := svc.Login(student.NewLogin{Name: "Al", StudentID: "A1"})
	fields := fieldsOf(t, err)
	assert.True(t, fields["studentId"])
	assert.False(t, fields["name"])
	assert.False(t, svc.IsAuthenticated())

	_, err = svc.Login(student.NewLogin{Name: "A", StudentID: "STU001"})
	assert.True(t, fieldsOf(t, err)["name"])

	// lengths are checked after trimming
	_, err = svc.Login(student.NewLogin{Name: " A ", StudentID: "  ST  "})
	fields = fieldsOf(t, err)
	assert.True(t, fields["name"])
	assert.True(t, fields["studentId"])

	assert.False(t, svc.IsAuthenticated())
}

func TestService_Logout(t *testing.T) {
	store := sessionstore.NewFileStore(t.TempDir())
	svc := student.NewService(store, newValidate())

	if _, err := svc.Login(student.NewLogin{Name: "Ada Lovelace", StudentID: "STU001"}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	assert.False(t, svc.IsAuthenticated())
	_, err := store.Load()
	assert.Equal(t, student.ErrNoSession, errors.Cause(err))

	// logging out twice is fine
	assert.NoError(t, svc.Logout())
}

func TestService_Rehydration(t *testing.T) {
	dir := t.TempDir()
	store := sessionstore.NewFileStore(dir)

	svc := student.NewService(store, newValidate())
	if _, err := svc.Login(student.NewLogin{Name: "Ada Lovelace", StudentID: "STU001"}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	// a new service over the same mirror picks the session up
	svc2 := student.NewService(sessionstore.NewFileStore(dir), newValidate())
	current, ok := svc2.Current()
	assert.True(t, ok)
	assert.Equal(t, "STU001", current.ID)
}

func TestService_CorruptMirrorIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "studentData.json"), []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	svc := student.NewService(sessionstore.NewFileStore(dir), newValidate())
	assert.False(t, svc.IsAuthenticated())
}
