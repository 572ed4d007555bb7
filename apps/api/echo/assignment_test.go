package echoapi

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CyberG247/digital-assignment-portal/core/assignment"
	"github.com/CyberG247/digital-assignment-portal/core/student"
)

func createTestAssignment(t *testing.T, deps *Deps, title string, due time.Time, maxGrade float64) assignment.Assignment {
	a, err := deps.AssignmentSvc.Create(assignment.NewAssignment{
		Title:       title,
		Subject:     "Computer Science",
		Description: "A description.",
		DueAt:       due,
		MaxGrade:    maxGrade,
	})
	if err != nil {
		t.Fatalf("createTestAssignment() failed: %v", err)
	}
	return a
}

func Test_assignmentApi_create(t *testing.T) {
	app, _, _ := initApp(t)

	tests := []httpTest{
		{
			name: "assignments are created with defaults applied",
			body: marchallObj(t, assignment.NewAssignment{
				Title:       "Data Structures Lab Report",
				Subject:     "Computer Science",
				Description: "BST analysis.",
				DueAt:       time.Now().Add(72 * time.Hour),
			}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "mandatory fields are enforced",
			body:     []byte(`{"subject": "Computer Science"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/assignments", tt.body)
			app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)

			if rec.Code == http.StatusCreated {
				var a assignment.Assignment
				unmarchallObj(t, rec.Body.Bytes(), &a)
				assert.NotEmpty(t, a.ID)
				assert.Equal(t, float64(assignment.DefaultMaxGrade), a.MaxGrade)
				assert.Contains(t, a.Instructions, "Complete the Data Structures Lab Report assignment")
			}
		})
	}
}

func Test_assignmentApi_query(t *testing.T) {
	app, deps, _ := initApp(t)

	req, rec := newRequest(http.MethodGet, "/v1/assignments")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	a := createTestAssignment(t, deps, "First", time.Now().Add(24*time.Hour), 100)

	req, rec = newRequest(http.MethodGet, "/v1/assignments")
	app.ServeHTTP(rec, req)
	var assignments []assignment.Assignment
	unmarchallObj(t, rec.Body.Bytes(), &assignments)
	if assert.Len(t, assignments, 1) {
		assert.Equal(t, a.ID, assignments[0].ID)
	}
}

// Exercises the full portal flow: publish, submit, grade, notifications.
func Test_assignmentApi_studentFlow(t *testing.T) {
	app, deps, _ := initApp(t)
	token := getToken(t, student.Student{Name: "Ada Lovelace", ID: "STU001"})

	a := createTestAssignment(t, deps, "Database Design Assignment", time.Now().Add(72*time.Hour), 100)

	// starts out pending
	req, rec := newAuthRequest(http.MethodGet, "/v1/assignments/mine", token)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	var views []assignment.StudentAssignment
	unmarchallObj(t, rec.Body.Bytes(), &views)
	if assert.Len(t, views, 1) {
		assert.Equal(t, assignment.StatusPending, views[0].Status)
	}

	// submitting flips the status and notifies the student
	body := marchallObj(t, assignment.SubmitAssignment{FileLabel: "library_db_design.pdf"})
	req, rec = newAuthRequest(http.MethodPost, "/v1/assignments/"+a.ID+"/submit", token, body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	var view assignment.StudentAssignment
	unmarchallObj(t, rec.Body.Bytes(), &view)
	assert.Equal(t, assignment.StatusSubmitted, view.Status)
	assert.Equal(t, "library_db_design.pdf", view.SubmissionFile)

	req, rec = newAuthRequest(http.MethodGet, "/v1/notifications", token)
	app.ServeHTTP(rec, req)
	var notifs []assignment.Notification
	unmarchallObj(t, rec.Body.Bytes(), &notifs)
	if assert.Len(t, notifs, 1) {
		assert.Contains(t, notifs[0].Message, "submitted successfully")
		assert.False(t, notifs[0].Read)
	}

	// grading flips the status again and notifies with the score
	body = marchallObj(t, map[string]interface{}{"student_id": "STU001", "grade": 85})
	req, rec = newRequest(http.MethodPost, "/v1/assignments/"+a.ID+"/grade", body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/assignments/mine", token)
	app.ServeHTTP(rec, req)
	unmarchallObj(t, rec.Body.Bytes(), &views)
	if assert.Len(t, views, 1) {
		assert.Equal(t, assignment.StatusGraded, views[0].Status)
		if assert.NotNil(t, views[0].Grade) {
			assert.Equal(t, float64(85), *views[0].Grade)
		}
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/notifications", token)
	app.ServeHTTP(rec, req)
	unmarchallObj(t, rec.Body.Bytes(), &notifs)
	if assert.Len(t, notifs, 2) {
		assert.Contains(t, notifs[0].Message, "85/100")
	}

	// mark the grade notification read; marking again is a no-op
	for i := 0; i < 2; i++ {
		req, rec = newAuthRequest(http.MethodPut, "/v1/notifications/"+notifs[0].ID+"/read", token)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		var n assignment.Notification
		unmarchallObj(t, rec.Body.Bytes(), &n)
		assert.True(t, n.Read)
	}
}

func Test_assignmentApi_grade_errors(t *testing.T) {
	app, deps, _ := initApp(t)
	a := createTestAssignment(t, deps, "First", time.Now().Add(24*time.Hour), 100)
	token := getToken(t, student.Student{Name: "Ada Lovelace", ID: "STU001"})

	body := marchallObj(t, assignment.SubmitAssignment{FileLabel: "work.pdf"})
	req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/"+a.ID+"/submit", token, body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	tests := []httpTest{
		{
			name:     "grade above the ceiling",
			path:     "/v1/assignments/" + a.ID + "/grade",
			body:     []byte(`{"student_id": "STU001", "grade": 100.01}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"grade": "grade must be between 0 and 100"}`),
		},
		{
			name:     "negative grade",
			path:     "/v1/assignments/" + a.ID + "/grade",
			body:     []byte(`{"student_id": "STU001", "grade": -1}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"grade": "grade must be between 0 and 100"}`),
		},
		{
			name:     "grading a student who never submitted",
			path:     "/v1/assignments/" + a.ID + "/grade",
			body:     []byte(`{"student_id": "STU002", "grade": 50}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"student_id": "this student has not submitted this assignment"}`),
		},
		{
			name:     "unknown assignment",
			path:     "/v1/assignments/nope/grade",
			body:     []byte(`{"student_id": "STU001", "grade": 50}`),
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"error": "assignment not found"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_assignmentApi_submit_idempotent(t *testing.T) {
	app, deps, repo := initApp(t)
	a := createTestAssignment(t, deps, "First", time.Now().Add(24*time.Hour), 100)
	token := getToken(t, student.Student{Name: "Ada Lovelace", ID: "STU001"})

	for i := 0; i < 2; i++ {
		body := marchallObj(t, assignment.SubmitAssignment{FileLabel: fmt.Sprintf("v%d.pdf", i+1)})
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/"+a.ID+"/submit", token, body)
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	stored, err := repo.GetAssignmentByID(a.ID)
	if err != nil {
		t.Fatalf("GetAssignmentByID() failed: %v", err)
	}
	if assert.Len(t, stored.Submissions, 1) {
		// the first hand-in wins; re-submission changes nothing
		assert.Equal(t, "v1.pdf", stored.Submissions[0].FileLabel)
	}
	notifs, _ := deps.AssignmentSvc.NotificationsFor("STU001")
	assert.Len(t, notifs, 1)

	// unknown assignment
	body := marchallObj(t, assignment.SubmitAssignment{FileLabel: "x.pdf"})
	req, rec := newAuthRequest(http.MethodPost, "/v1/assignments/nope/submit", token, body)
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
