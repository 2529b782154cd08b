package domain

import "errors"

var (
	ErrEmptyQuery     = errors.New("query must not be empty")
	ErrNoSentiments   = errors.New("no sentiment results to aggregate")
	ErrLengthMismatch = errors.New("posts and sentiment results differ in length")
	ErrResultNotFound = errors.New("analysis result not found")
)
