package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// MaxDescriptionWords is the upper bound for a memory's full description
	MaxDescriptionWords = 500

	// MaxBriefDescriptionWords is the upper bound for a memory's brief description
	MaxBriefDescriptionWords = 30
)

// MemoryID is a UUID-based identifier for Memory
type MemoryID string

// NewMemoryID generates a new UUID v4 MemoryID
func NewMemoryID() MemoryID {
	return MemoryID(uuid.New().String())
}

// Memory is a personal event submitted by a contributor on behalf of a patient.
// It is immutable after creation; only deletion is allowed.
type Memory struct {
	ID               MemoryID
	ContributorID    ContributorID
	PatientID        string
	PhotoURL         string
	Description      string // Full description, at most 500 words
	BriefDescription string // Short, name-free summary, at most 30 words
	EventDate        string // Optional, rendered verbatim into the prompt
	CreatedAt        time.Time
}

// HasEventDate reports whether the memory carries an event date
func (m *Memory) HasEventDate() bool {
	return strings.TrimSpace(m.EventDate) != ""
}

// Validate checks required fields and description guidelines
func (m *Memory) Validate() error {
	if m.PatientID == "" {
		return goerr.Wrap(ErrInvalidMemory, "patient ID is required")
	}
	if m.ContributorID == "" {
		return goerr.Wrap(ErrInvalidMemory, "contributor ID is required")
	}
	if strings.TrimSpace(m.Description) == "" {
		return goerr.Wrap(ErrInvalidMemory, "description is required")
	}
	if n := CountWords(m.Description); n > MaxDescriptionWords {
		return goerr.Wrap(ErrInvalidMemory, "description is too long",
			goerr.V("words", n), goerr.V("max", MaxDescriptionWords))
	}
	if n := CountWords(m.BriefDescription); n > MaxBriefDescriptionWords {
		return goerr.Wrap(ErrInvalidMemory, "brief description is too long",
			goerr.V("words", n), goerr.V("max", MaxBriefDescriptionWords))
	}
	return nil
}

// CountWords counts whitespace-separated words
func CountWords(s string) int {
	return len(strings.Fields(s))
}
