package core

import "errors"

// Import errors. Each maps to one user-facing message; see MapError.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileParse           = errors.New("file parse error")
	ErrEmptyInput          = errors.New("empty input")
	ErrNoValidRows         = errors.New("no valid tasks found")
	ErrTextParse           = errors.New("text parse error")
	ErrNothingToCommit     = errors.New("nothing to commit")
	ErrTooManyImports      = errors.New("too many imports in progress")
	ErrFileTooLarge        = errors.New("file too large")
	ErrNoFile              = errors.New("no file provided")
)

// Task store errors.
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidDate  = errors.New("invalid date")
)
