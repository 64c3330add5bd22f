package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")
)

// Rejection reasons reported by booking validation.
const (
	ReasonNameEmpty      = "name empty"
	ReasonDateNull       = "date null"
	ReasonInvalidClassID = "invalid class id"
	ReasonDateOutOfRange = "date out of range"
)
