package todo

import "errors"

var (
	ErrValidation = errors.New("validation error")

	// ErrTodoNotFound covers both a missing todo and a todo owned by a
	// different user; a non-owner never learns the resource exists.
	ErrTodoNotFound = errors.New("todo not found")
)
