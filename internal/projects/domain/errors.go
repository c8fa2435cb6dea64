package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMissingID       = errors.New("project id is required")
	ErrUnauthenticated = errors.New("authentication failed")
)
