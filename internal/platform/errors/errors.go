package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("a session is already active")
	ErrInvalidDuration     = errors.New("stop time precedes session start")
	ErrCorruptState        = errors.New("corrupt session state")
	ErrInvalidRange        = errors.New("invalid report range")
)
