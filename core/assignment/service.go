package assignment

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/CyberG247/digital-assignment-portal/core"
)

var (
	// errors
	ErrNotFound             = errors.New("assignment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	errNotSubmitted    = "this student has not submitted this assignment"
	errGradeOutOfRange = "grade must be between 0 and %g"
)

const (
	instructionsTemplate = "Complete the %s assignment by uploading your work before the due date. " +
		"Make sure to follow the guidelines provided in class and include all required elements in your submission."

	submittedMessage = "Your assignment %q has been submitted successfully. " +
		"Please check back after 48 hours to see your grade."
	gradedMessage = "Your assignment %q has been graded. You scored %g/%g points."
)

type (
	// Repository is the persistence seam of the store. The in-memory
	// implementation is the only one today; a real database would be
	// substituted here without changing callers.
	Repository interface {
		CreateAssignment(a Assignment) (Assignment, error)
		QueryAllAssignments() ([]Assignment, error) // insertion order
		GetAssignmentByID(id string) (Assignment, error)
		UpdateAssignment(a Assignment) (Assignment, error)

		CreateNotification(n Notification) (Notification, error)
		QueryNotificationsByStudent(studentID string) ([]Notification, error) // insertion order
		GetNotificationByID(id string) (Notification, error)
		UpdateNotification(n Notification) (Notification, error)
	}

	// Service is the single source of truth for assignments and
	// notifications; all status derivation lives here so callers never
	// compute it themselves.
	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create publishes a new assignment. Instructions default to a templated
// string derived from the title; the grade ceiling defaults to 100.
func (svc *Service) Create(na NewAssignment) (Assignment, error) {
	if err := na.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}

	a := Assignment{
		ID:           uuid.New().String(),
		Title:        na.Title,
		Subject:      na.Subject,
		Description:  na.Description,
		Instructions: na.Instructions,
		DueAt:        na.DueAt.UTC(),
		MaxGrade:     na.MaxGrade,
		Submissions:  []Submission{},
		CreatedAt:    time.Now().UTC(),
	}
	if a.Instructions == "" {
		a.Instructions = fmt.Sprintf(instructionsTemplate, a.Title)
	}
	if a.MaxGrade == 0 {
		a.MaxGrade = DefaultMaxGrade
	}
	return svc.repo.CreateAssignment(a)
}

// QueryAll returns every assignment in insertion order.
func (svc *Service) QueryAll() ([]Assignment, error) {
	return svc.repo.QueryAllAssignments()
}

func (svc *Service) GetByID(id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(id)
}

// Submit records a student's hand-in and notifies them. Re-submitting is a
// successful no-op: the submission set and notifications are left untouched.
func (svc *Service) Submit(assignmentID, studentID string, sa SubmitAssignment) (Assignment, error) {
	if err := sa.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}

	a, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Assignment{}, err
	}
	if a.HasSubmitted(studentID) {
		return a, nil
	}

	a.Submissions = append(a.Submissions, Submission{
		StudentID:   studentID,
		FileLabel:   sa.FileLabel,
		SubmittedAt: time.Now().UTC(),
	})
	a, err = svc.repo.UpdateAssignment(a)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "saving submission")
	}

	if err = svc.notify(studentID, a.Title, fmt.Sprintf(submittedMessage, a.Title)); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Grade sets a student's grade on their submission and notifies them.
// Grading again overwrites the previous value; no history is retained.
func (svc *Service) Grade(assignmentID string, ga GradeAssignment) (Assignment, error) {
	if err := ga.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}

	a, err := svc.repo.GetAssignmentByID(assignmentID)
	if err != nil {
		return Assignment{}, err
	}
	sub := a.SubmissionFor(ga.StudentID)
	if sub == nil {
		return Assignment{}, core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: errNotSubmitted})
	}
	grade := *ga.Grade
	if grade < 0 || grade > a.MaxGrade {
		return Assignment{}, core.NewValidationError(nil, core.FieldError{
			Field: "grade", Error: fmt.Sprintf(errGradeOutOfRange, a.MaxGrade),
		})
	}

	sub.Grade = &grade
	a, err = svc.repo.UpdateAssignment(a)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "saving grade")
	}

	if err = svc.notify(ga.StudentID, a.Title, fmt.Sprintf(gradedMessage, a.Title, grade, a.MaxGrade)); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// ForStudent projects every assignment into the given student's view, with
// status recomputed against the current time. Insertion order is preserved.
func (svc *Service) ForStudent(studentID string) ([]StudentAssignment, error) {
	assignments, err := svc.repo.QueryAllAssignments()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	views := make([]StudentAssignment, 0, len(assignments))
	for i := range assignments {
		views = append(views, assignments[i].ForStudent(studentID, now))
	}
	return views, nil
}

// NotificationsFor returns the student's notifications, most recent first.
// Creation-time ties keep insertion order.
func (svc *Service) NotificationsFor(studentID string) ([]Notification, error) {
	notifs, err := svc.repo.QueryNotificationsByStudent(studentID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notifs, func(i, j int) bool { return notifs[i].CreatedAt.After(notifs[j].CreatedAt) })
	return notifs, nil
}

// MarkNotificationRead flips the read flag. Marking an already-read
// notification again is a successful no-op.
func (svc *Service) MarkNotificationRead(id string) (Notification, error) {
	n, err := svc.repo.GetNotificationByID(id)
	if err != nil {
		return Notification{}, err
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	return svc.repo.UpdateNotification(n)
}

func (svc *Service) notify(studentID, title, message string) error {
	_, err := svc.repo.CreateNotification(Notification{
		ID:              uuid.New().String(),
		StudentID:       studentID,
		AssignmentTitle: title,
		Message:         message,
		CreatedAt:       time.Now().UTC(),
	})
	return errors.Wrap(err, "creating notification")
}
