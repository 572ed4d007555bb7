package inmemdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CyberG247/digital-assignment-portal/core/assignment"
)

func TestAssignmentRepository_ReadsDetachStoredState(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	repo := NewAssignmentRepository(db)

	a, err := repo.CreateAssignment(assignment.Assignment{
		ID:       "1",
		Title:    "Database Design Assignment",
		DueAt:    time.Now().Add(24 * time.Hour),
		MaxGrade: 100,
		Submissions: []assignment.Submission{
			{StudentID: "STU001", FileLabel: "design.pdf", Grade: float64Ptr(85)},
		},
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}

	// writing through a returned row must not reach the table
	a.Submissions[0].FileLabel = "tampered.pdf"
	*a.Submissions[0].Grade = 0
	a.Submissions = append(a.Submissions, assignment.Submission{StudentID: "STU002"})

	stored, err := repo.GetAssignmentByID("1")
	if err != nil {
		t.Fatalf("GetAssignmentByID() failed: %v", err)
	}
	if assert.Len(t, stored.Submissions, 1) {
		assert.Equal(t, "design.pdf", stored.Submissions[0].FileLabel)
		if assert.NotNil(t, stored.Submissions[0].Grade) {
			assert.Equal(t, float64(85), *stored.Submissions[0].Grade)
		}
	}

	// the same holds for reads: mutating one copy leaves the next untouched
	*stored.Submissions[0].Grade = 30
	again, err := repo.GetAssignmentByID("1")
	if err != nil {
		t.Fatalf("GetAssignmentByID() failed: %v", err)
	}
	assert.Equal(t, float64(85), *again.Submissions[0].Grade)
}
