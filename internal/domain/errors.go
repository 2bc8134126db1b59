package domain

import "errors"

var (
	ErrNoFiles             = errors.New("no files provided")
	ErrTooManyFiles        = errors.New("too many files in one batch")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyOCRResult      = errors.New("no text could be extracted from document")
	ErrSessionNotFound     = errors.New("session not found")
)
