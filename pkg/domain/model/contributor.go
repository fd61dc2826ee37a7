package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

// AnonymousUserID is used when a contributor is submitted without a patient
// user ID.
const AnonymousUserID = "00000000-0000-0000-0000-000000000000"

// ContributorID is a UUID-based identifier for Contributor
type ContributorID string

// NewContributorID generates a new UUID v4 ContributorID
func NewContributorID() ContributorID {
	return ContributorID(uuid.New().String())
}

// Contributor is a person submitting memories on behalf of a patient.
// UserID is the patient's user ID.
type Contributor struct {
	ID                ContributorID
	UserID            string
	Name              string
	Email             string
	RelationshipType  types.RelationshipType
	RelationshipYears int
	CreatedAt         time.Time
}

// ContributorSummary is the part of a contributor the question prompt needs
type ContributorSummary struct {
	Name             string
	RelationshipType types.RelationshipType
}

// Summary returns the prompt-facing view of the contributor
func (c *Contributor) Summary() ContributorSummary {
	return ContributorSummary{
		Name:             c.Name,
		RelationshipType: c.RelationshipType,
	}
}

// Validate checks required fields
func (c *Contributor) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return goerr.Wrap(ErrInvalidContributor, "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return goerr.Wrap(ErrInvalidContributor, "email is required")
	}
	if c.RelationshipType == "" {
		return goerr.Wrap(ErrInvalidContributor, "relationship type is required")
	}
	if c.RelationshipYears <= 0 {
		return goerr.Wrap(ErrInvalidContributor, "relationship years is required",
			goerr.V("relationship_years", c.RelationshipYears))
	}
	return nil
}
