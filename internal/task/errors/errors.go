// Package errors provides custom error types for task-related operations.
package errors

import "errors"

var ErrTaskNotFound = errors.New("task not found")
