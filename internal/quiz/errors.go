package quiz

import "errors"

var (
	// ErrAlreadyActive is returned when a group already has a running quiz.
	ErrAlreadyActive = errors.New("a quiz is already active in this group")
	// ErrNotActive is returned when a stop is requested with no running quiz.
	ErrNotActive = errors.New("no active quiz in this group")
	// ErrNoContent means neither the generator nor the fallback bank could
	// produce questions for the requested subject.
	ErrNoContent = errors.New("no questions available for this subject")
)
