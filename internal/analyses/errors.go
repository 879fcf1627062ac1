package analyses

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrNoValidFiles = errors.New("no valid files")
)
