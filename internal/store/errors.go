package store

import (
	"errors"
	"fmt"
)

// ErrMissingElement is matched by every MissingElementError via errors.Is
var ErrMissingElement = errors.New("expected page element not found")

// UnknownStoreError is returned when a URL maps to no registered adapter
type UnknownStoreError struct {
	Store string
	URL   string
}

func (e *UnknownStoreError) Error() string {
	return fmt.Sprintf("no adapter registered for store %q (url %s)", e.Store, e.URL)
}

// Temporary reports false: refetching cannot make an unknown store known.
func (e *UnknownStoreError) Temporary() bool {
	return false
}

// MissingElementError reports an absent page element for one extracted field
type MissingElementError struct {
	Store    string
	Field    string
	Selector string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("%s: %s element not found (selector %q)", e.Store, e.Field, e.Selector)
}

// Is lets callers match with errors.Is(err, ErrMissingElement)
func (e *MissingElementError) Is(target error) bool {
	return target == ErrMissingElement
}

// Temporary reports true; a blocked or half-rendered page often lacks the element.
func (e *MissingElementError) Temporary() bool {
	return true
}
