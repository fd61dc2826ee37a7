package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/model/auth"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

type ContributorUseCase struct {
	repo interfaces.Repository
}

func NewContributorUseCase(repo interfaces.Repository) *ContributorUseCase {
	return &ContributorUseCase{repo: repo}
}

// Create registers a contributor. Contributors submitted without a user ID
// are attached to the authenticated patient, or to model.AnonymousUserID
// when there is none.
func (uc *ContributorUseCase) Create(ctx context.Context, contributor *model.Contributor) (*model.Contributor, error) {
	c := *contributor
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.RelationshipType = types.RelationshipType(strings.TrimSpace(string(c.RelationshipType)))
	if c.UserID == "" {
		c.UserID = model.AnonymousUserID
		if p := auth.PrincipalFromContext(ctx); p != nil {
			c.UserID = p.PatientID
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeContribute(ctx, c.UserID); err != nil {
		return nil, err
	}

	created, err := uc.repo.Contributor().Create(ctx, &c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create contributor")
	}
	return created, nil
}

// Get returns a contributor
func (uc *ContributorUseCase) Get(ctx context.Context, contributorID model.ContributorID) (*model.Contributor, error) {
	c, err := uc.repo.Contributor().Get(ctx, contributorID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get contributor", goerr.V(model.ContributorIDKey, contributorID))
	}
	return c, nil
}

// ListByUser returns the contributors of a patient ordered by name
func (uc *ContributorUseCase) ListByUser(ctx context.Context, userID string) ([]*model.Contributor, error) {
	if err := authorizeRead(ctx, userID); err != nil {
		return nil, err
	}

	contributors, err := uc.repo.Contributor().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list contributors", goerr.V("user_id", userID))
	}
	return contributors, nil
}
