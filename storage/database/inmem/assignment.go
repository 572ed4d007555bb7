package inmemdb

import (
	"github.com/CyberG247/digital-assignment-portal/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

// clone detaches the submissions backing array and their grade pointers so
// callers never alias table rows.
func clone(a assignment.Assignment) assignment.Assignment {
	subs := make([]assignment.Submission, len(a.Submissions))
	for i, sub := range a.Submissions {
		if sub.Grade != nil {
			grade := *sub.Grade
			sub.Grade = &grade
		}
		subs[i] = sub
	}
	a.Submissions = subs
	return a
}

func (repo *assignmentRepository) CreateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	a = clone(a)
	repo.db.assignment.table[a.ID] = &a
	repo.db.assignment.order = append(repo.db.assignment.order, a.ID)
	return clone(a), nil
}

func (repo *assignmentRepository) QueryAllAssignments() ([]assignment.Assignment, error) {
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	assignments := make([]assignment.Assignment, 0, len(repo.db.assignment.order))
	for _, id := range repo.db.assignment.order {
		assignments = append(assignments, clone(*repo.db.assignment.table[id]))
	}
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignmentByID(id string) (assignment.Assignment, error) {
	repo.db.assignment.RLock()
	defer repo.db.assignment.RUnlock()

	if a, ok := repo.db.assignment.table[id]; ok {
		return clone(*a), nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) UpdateAssignment(a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.assignment.Lock()
	defer repo.db.assignment.Unlock()

	if _, ok := repo.db.assignment.table[a.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	a = clone(a)
	repo.db.assignment.table[a.ID] = &a
	return clone(a), nil
}

func (repo *assignmentRepository) CreateNotification(n assignment.Notification) (assignment.Notification, error) {
	repo.db.notification.Lock()
	defer repo.db.notification.Unlock()

	repo.db.notification.table[n.ID] = &n
	repo.db.notification.order = append(repo.db.notification.order, n.ID)
	return n, nil
}

func (repo *assignmentRepository) QueryNotificationsByStudent(studentID string) ([]assignment.Notification, error) {
	repo.db.notification.RLock()
	defer repo.db.notification.RUnlock()

	notifs := make([]assignment.Notification, 0)
	for _, id := range repo.db.notification.order {
		if n := repo.db.notification.table[id]; n.StudentID == studentID {
			notifs = append(notifs, *n)
		}
	}
	return notifs, nil
}

func (repo *assignmentRepository) GetNotificationByID(id string) (assignment.Notification, error) {
	repo.db.notification.RLock()
	defer repo.db.notification.RUnlock()

	if n, ok := repo.db.notification.table[id]; ok {
		return *n, nil
	}
	return assignment.Notification{}, assignment.ErrNotificationNotFound
}

func (repo *assignmentRepository) UpdateNotification(n assignment.Notification) (assignment.Notification, error) {
	repo.db.notification.Lock()
	defer repo.db.notification.Unlock()

	if _, ok := repo.db.notification.table[n.ID]; !ok {
		return assignment.Notification{}, assignment.ErrNotificationNotFound
	}
	repo.db.notification.table[n.ID] = &n
	return n, nil
}
