package option

import "errors"

// ErrNotSet matches every NotSetError through errors.Is.
var ErrNotSet = errors.New("field not set")

// NotSetError reports the first mandatory field a builder found absent.
type NotSetError struct {
	Field string
}

// NotSet returns a NotSetError for field. Generated Build methods call it.
func NotSet(field string) error {
	return &NotSetError{Field: field}
}

func (e *NotSetError) Error() string {
	return e.Field + " not set"
}

// Is reports whether target is ErrNotSet.
func (e *NotSetError) Is(target error) bool {
	return target == ErrNotSet
}
