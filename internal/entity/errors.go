package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("chat session not found")
	ErrNoSourceLoaded  = errors.New("no site or document loaded for this session")

	// Content errors
	ErrNoContent = errors.New("source contains no readable text content")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Completion errors
	ErrEmptyCompletion = errors.New("completion response contained no content")
)

// FetchError reports a failed attempt to retrieve source content. Transport
// faults and non-2xx statuses both map here so callers can present a single
// "fetching failed" condition with the underlying cause.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
