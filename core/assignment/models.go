package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CyberG247/digital-assignment-portal/core"
)

// Status is the classification of an assignment as seen by one student.
// It is derived on every read and never stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
	StatusGraded    Status = "graded"
	StatusOverdue   Status = "overdue"
)

const DefaultMaxGrade = 100

// Submission records one student's hand-in for an assignment.
// The file label stands in for the upload; file bytes never reach the core.
type Submission struct {
	StudentID   string    `json:"student_id"`
	FileLabel   string    `json:"file_label"`
	SubmittedAt time.Time `json:"submitted_at"` // UTC
	Grade       *float64  `json:"grade,omitempty"`
}

type Assignment struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Subject      string       `json:"subject"`
	Description  string       `json:"description"`
	Instructions string       `json:"instructions"`
	DueAt        time.Time    `json:"due_at"` // UTC
	MaxGrade     float64      `json:"max_grade"`
	Submissions  []Submission `json:"submissions"`
	CreatedAt    time.Time    `json:"created_at"` // UTC
}

// SubmissionFor returns this student's submission, or nil if they never submitted.
func (a *Assignment) SubmissionFor(studentID string) *Submission {
	for i := range a.Submissions {
		if a.Submissions[i].StudentID == studentID {
			return &a.Submissions[i]
		}
	}
	return nil
}

func (a *Assignment) HasSubmitted(studentID string) bool {
	return a.SubmissionFor(studentID) != nil
}

// StatusFor derives the status of this assignment for a student at a given time:
// graded if they submitted and their grade is set; submitted if they submitted;
// overdue if the due date has passed; pending otherwise.
func (a *Assignment) StatusFor(studentID string, now time.Time) Status {
	if sub := a.SubmissionFor(studentID); sub != nil {
		if sub.Grade != nil {
			return StatusGraded
		}
		return StatusSubmitted
	}
	if now.After(a.DueAt) {
		return StatusOverdue
	}
	return StatusPending
}

// StudentAssignment is the read-only view of an Assignment as seen by one
// student. The underlying assignment is never modified by producing it.
type StudentAssignment struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Subject        string     `json:"subject"`
	Description    string     `json:"description"`
	Instructions   string     `json:"instructions"`
	DueAt          time.Time  `json:"due_at"`
	MaxGrade       float64    `json:"max_grade"`
	Status         Status     `json:"status"`
	Grade          *float64   `json:"grade,omitempty"`
	SubmissionFile string     `json:"submission_file,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
}

// ForStudent projects this assignment into a student's view at a given time.
func (a *Assignment) ForStudent(studentID string, now time.Time) StudentAssignment {
	view := StudentAssignment{
		ID:           a.ID,
		Title:        a.Title,
		Subject:      a.Subject,
		Description:  a.Description,
		Instructions: a.Instructions,
		DueAt:        a.DueAt,
		MaxGrade:     a.MaxGrade,
		Status:       a.StatusFor(studentID, now),
	}
	if sub := a.SubmissionFor(studentID); sub != nil {
		view.Grade = sub.Grade
		view.SubmissionFile = sub.FileLabel
		at := sub.SubmittedAt
		view.SubmittedAt = &at
	}
	return view
}

// Notification is a one-way, student-scoped message generated as a side
// effect of a submission or grading. The assignment title is denormalized
// at creation time.
type Notification struct {
	ID              string    `json:"id"`
	StudentID       string    `json:"student_id"`
	AssignmentTitle string    `json:"assignment_title"`
	Message         string    `json:"message"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	Read            bool      `json:"read"`
}

// NewAssignment contains information needed to publish a new Assignment.
type NewAssignment struct {
	Title        string    `json:"title" validate:"required"`
	Subject      string    `json:"subject" validate:"required"`
	Description  string    `json:"description" validate:"required"`
	Instructions string    `json:"instructions"`
	DueAt        time.Time `json:"due_at" validate:"required"`
	MaxGrade     float64   `json:"max_grade" validate:"omitempty,gt=0"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	na.Description = core.CleanString(na.Description)
	na.Instructions = core.CleanString(na.Instructions)
	return validate.Struct(na)
}

// SubmitAssignment defines what a student provides when handing in.
type SubmitAssignment struct {
	FileLabel string `json:"file_label" validate:"required"`
}

func (sa *SubmitAssignment) Validate(validate *validator.Validate) error {
	sa.FileLabel = core.CleanString(sa.FileLabel)
	return validate.Struct(sa)
}

// GradeAssignment defines what a teacher provides when grading a submission.
// The upper grade bound depends on the assignment and is checked by the service.
type GradeAssignment struct {
	StudentID string   `json:"student_id" validate:"required"`
	Grade     *float64 `json:"grade" validate:"required"`
}

func (ga *GradeAssignment) Validate(validate *validator.Validate) error {
	ga.StudentID = core.CleanString(ga.StudentID)
	return validate.Struct(ga)
}
