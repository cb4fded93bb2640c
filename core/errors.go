package core

import "errors"

var (
	ErrInvalidLineNumber = errors.New("invalid line number")
	ErrInvalidPosition   = errors.New("invalid position")
)
