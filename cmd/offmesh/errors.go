package main

import "errors"

// Sentinel errors for command operations
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrFileNotFormatted = errors.New("file is not formatted")
	ErrFormattingErrors = errors.New("some files had formatting errors")
	ErrBlockOutOfRange  = errors.New("block index out of range")
)
