package documents

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateName = errors.New("duplicate file name")
	ErrNoSummary     = errors.New("no summary to save")
)
