package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
)

type contributorRepository struct {
	mu           sync.RWMutex
	contributors map[model.ContributorID]*model.Contributor
}

func newContributorRepository() *contributorRepository {
	return &contributorRepository{
		contributors: make(map[model.ContributorID]*model.Contributor),
	}
}

func copyContributor(c *model.Contributor) *model.Contributor {
	copied := *c
	return &copied
}

func (r *contributorRepository) Create(ctx context.Context, contributor *model.Contributor) (*model.Contributor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyContributor(contributor)
	if created.ID == "" {
		created.ID = model.NewContributorID()
	}
	if _, exists := r.contributors[created.ID]; exists {
		return nil, goerr.New("contributor already exists", goerr.V(model.ContributorIDKey, created.ID))
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.contributors[created.ID] = created
	return copyContributor(created), nil
}

func (r *contributorRepository) Get(ctx context.Context, contributorID model.ContributorID) (*model.Contributor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.contributors[contributorID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "contributor not found", goerr.V(model.ContributorIDKey, contributorID))
	}

	return copyContributor(c), nil
}

func (r *contributorRepository) ListByUser(ctx context.Context, userID string) ([]*model.Contributor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	contributors := make([]*model.Contributor, 0)
	for _, c := range r.contributors {
		if c.UserID == userID {
			contributors = append(contributors, copyContributor(c))
		}
	}

	sort.SliceStable(contributors, func(i, j int) bool {
		if contributors[i].Name == contributors[j].Name {
			return contributors[i].ID < contributors[j].ID
		}
		return contributors[i].Name < contributors[j].Name
	})

	return contributors, nil
}
