package inmemdb

import (
	"sync"

	"github.com/CyberG247/digital-assignment-portal/core/assignment"
)

type (
	DB struct {
		assignment   *assignmentTable
		notification *notificationTable
	}

	// maps do not keep insertion order; each table tracks it explicitly
	assignmentTable struct {
		sync.RWMutex
		table map[string]*assignment.Assignment
		order []string
	}

	notificationTable struct {
		sync.RWMutex
		table map[string]*assignment.Notification
		order []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		assignment:   &assignmentTable{table: make(map[string]*assignment.Assignment)},
		notification: &notificationTable{table: make(map[string]*assignment.Notification)},
	}
	return db, nil
}
