package repository

import "errors"

// Sentinel kinds for best-record store errors.
var (
	ErrNotFound = errors.New("record not found")
)
