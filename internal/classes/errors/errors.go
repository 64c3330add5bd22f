package errors

import "errors"

var (
	ErrNotFound = errors.New("class not found")
)
