package interfaces

import (
	"context"

	"github.com/memoraid/memoraid/pkg/domain/model"
)

// ContributorRepository defines the interface for Contributor data persistence
type ContributorRepository interface {
	Create(ctx context.Context, contributor *model.Contributor) (*model.Contributor, error)
	Get(ctx context.Context, contributorID model.ContributorID) (*model.Contributor, error)

	// ListByUser retrieves contributors of a patient ordered by name
	ListByUser(ctx context.Context, userID string) ([]*model.Contributor, error)
}
