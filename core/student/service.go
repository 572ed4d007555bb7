package student

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// ErrNoSession is returned by a SessionStore when no usable session
	// mirror exists (absent, unreadable or corrupt).
	ErrNoSession = errors.New("no session saved")
)

type (
	// SessionStore mirrors the logged-in identity between runs.
	// It is best effort only and never a security boundary.
	SessionStore interface {
		Save(s Student) error
		Load() (Student, error)
		Clear() error
	}

	// Service holds at most one authenticated identity at a time.
	Service struct {
		store    SessionStore
		validate *validator.Validate

		mutex   sync.RWMutex
		current *Student
	}
)

// NewService hydrates a previous session from the store once; a corrupt
// mirror is dropped silently and the service starts anonymous.
func NewService(store SessionStore, validate *validator.Validate) *Service {
	svc := &Service{store: store, validate: validate}
	if s, err := store.Load(); err == nil {
		svc.current = &s
	}
	return svc
}

// Login validates the submitted identity and, on success, holds it and
// mirrors it to the session store. Validation failures leave state untouched.
func (svc *Service) Login(nl NewLogin) (Student, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	s := Student{Name: nl.Name, ID: nl.StudentID}
	svc.mutex.Lock()
	svc.current = &s
	svc.mutex.Unlock()

	// the mirror is best effort; a failed write only costs session continuity
	_ = svc.store.Save(s)
	return s, nil
}

// Logout clears the identity and removes the persisted mirror.
func (svc *Service) Logout() error {
	svc.mutex.Lock()
	svc.current = nil
	svc.mutex.Unlock()
	return svc.store.Clear()
}

// Current returns the held identity, if any.
func (svc *Service) Current() (Student, bool) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	if svc.current == nil {
		return Student{}, false
	}
	return *svc.current, true
}

func (svc *Service) IsAuthenticated() bool {
	_, ok := svc.Current()
	return ok
}
