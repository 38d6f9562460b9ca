package snippet

import "errors"

var (
	// ErrSourceMissing is returned when the store directory does not exist
	ErrSourceMissing = errors.New("source dir does not exist")

	// ErrNotFound is returned when an added file or a removed snippet is missing
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a snippet with the same name already exists
	ErrConflict = errors.New("already exists")

	// ErrSameFile is returned when a snippet would be copied onto itself
	ErrSameFile = errors.New("are the same file")

	// ErrInvalidName is returned when a snippet name cannot be used as a file name
	ErrInvalidName = errors.New("invalid snippet name")
)
