// Package errors provides custom error types for student-related operations.
package errors

import "errors"

var ErrStudentNotFound = errors.New("student not found")
