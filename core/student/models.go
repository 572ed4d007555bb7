package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/CyberG247/digital-assignment-portal/core"
)

// Student is an authenticated student identity. The JSON shape doubles as
// the persisted session mirror format.
type Student struct {
	Name string `json:"name"`
	ID   string `json:"studentId"`
}

// NewLogin contains information needed to log a student in.
// Lengths are measured after trimming; the ID is otherwise free-form.
type NewLogin struct {
	Name      string `json:"name" validate:"required,min=2,max=50"`
	StudentID string `json:"studentId" validate:"required,min=3,max=20"`
}

func (nl *NewLogin) Validate(validate *validator.Validate) error {
	nl.Name = core.CleanString(nl.Name)
	nl.StudentID = core.CleanString(nl.StudentID)
	return validate.Struct(nl)
}
