package models

import "strings"

// ValidationError collects the problems found in a record.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func validationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	ve := &ValidationError{}
	for _, err := range errs {
		ve.Problems = append(ve.Problems, err.Error())
	}
	return ve
}
