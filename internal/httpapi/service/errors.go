package service

import "errors"

// Shared sentinels surfaced by multiple services; handlers map them to HTTP
// status codes.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)
