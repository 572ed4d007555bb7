// Package sessionstore persists the logged-in student identity as a small
// JSON file, mirroring what a browser client would keep in local storage
// under its "studentData" key.
package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/CyberG247/digital-assignment-portal/core/student"
)

const fileName = "studentData.json"

type FileStore struct {
	path string
}

var _ student.SessionStore = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, fileName)}
}

func (fs *FileStore) Save(s student.Student) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	if err = os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	return errors.Wrap(os.WriteFile(fs.path, data, 0600), "writing session")
}

// Load reads the mirror once. A corrupt mirror is removed and reported as
// ErrNoSession so the app starts anonymous instead of failing.
func (fs *FileStore) Load() (student.Student, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return student.Student{}, student.ErrNoSession
		}
		return student.Student{}, errors.Wrap(err, "reading session")
	}

	var s student.Student
	if err = json.Unmarshal(data, &s); err != nil || s.ID == "" || s.Name == "" {
		_ = os.Remove(fs.path)
		return student.Student{}, student.ErrNoSession
	}
	return s, nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "clearing session")
	}
	return nil
}
