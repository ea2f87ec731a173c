package employee

import (
	"errors"
	"strings"
)

var (
	ErrNotFound             = errors.New("employee not found")
	ErrDuplicate            = errors.New("email or username already taken")
	ErrInvalidPhone         = errors.New("phone must be exactly 10 digits")
	ErrInvalidPersonalPhone = errors.New("personal phone must be exactly 10 digits")
	ErrInvalidPatch         = errors.New("patch does not fit the record shape")
)

// RestrictedFieldsError reports fields a non-admin caller tried to change
// while the reject update policy is active.
type RestrictedFieldsError struct {
	Fields []string
}

func (e *RestrictedFieldsError) Error() string {
	return "restricted fields: " + e.Joined()
}

func (e *RestrictedFieldsError) Joined() string {
	return strings.Join(e.Fields, ", ")
}
