package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Question generation pipeline errors. Callers distinguish them with errors.Is.
var (
	// ErrUpstreamUnavailable means the text-generation service could not be
	// reached, returned no text, or timed out.
	ErrUpstreamUnavailable = errors.New("text generation service unavailable")

	// ErrMalformedResponse means the generated text failed structural validation.
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrPersistence means storing generated questions failed.
	ErrPersistence = errors.New("failed to persist questions")
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// Input validation errors
var (
	ErrInvalidMemory      = goerr.New("invalid memory")
	ErrInvalidContributor = goerr.New("invalid contributor")
	ErrInvalidQuizAttempt = goerr.New("invalid quiz attempt")
)

// Context keys for error values
const (
	MemoryIDKey      = "memory_id"
	PatientIDKey     = "patient_id"
	ContributorIDKey = "contributor_id"
	ElementIndexKey  = "element_index"
	ReasonKey        = "reason"
)

// MalformedResponseError describes why a generation response was rejected.
// Index is the 1-based position of the offending element, or 0 when the
// failure concerns the response as a whole.
type MalformedResponseError struct {
	Reason     string
	Index      int
	Violations []string
}

func (e *MalformedResponseError) Error() string {
	if e.Index == 0 {
		return fmt.Sprintf("malformed generation response: %s", e.Reason)
	}
	return fmt.Sprintf("malformed generation response: question %d: %s", e.Index, strings.Join(e.Violations, "; "))
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// NewMalformedResponse creates a batch-level MalformedResponseError
func NewMalformedResponse(reason string) *MalformedResponseError {
	return &MalformedResponseError{Reason: reason}
}

// NewMalformedElement creates an element-level MalformedResponseError
func NewMalformedElement(index int, violations []string) *MalformedResponseError {
	return &MalformedResponseError{
		Reason:     "invalid question",
		Index:      index,
		Violations: violations,
	}
}
