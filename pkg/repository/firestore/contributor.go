package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type contributorDoc struct {
	ID                string    `firestore:"id"`
	UserID            string    `firestore:"user_id"`
	Name              string    `firestore:"name"`
	Email             string    `firestore:"email"`
	RelationshipType  string    `firestore:"relationship_type"`
	RelationshipYears int       `firestore:"relationship_years"`
	CreatedAt         time.Time `firestore:"created_at"`
}

func toContributorDoc(c *model.Contributor) *contributorDoc {
	return &contributorDoc{
		ID:                string(c.ID),
		UserID:            c.UserID,
		Name:              c.Name,
		Email:             c.Email,
		RelationshipType:  string(c.RelationshipType),
		RelationshipYears: c.RelationshipYears,
		CreatedAt:         c.CreatedAt,
	}
}

func fromContributorDoc(d *contributorDoc) *model.Contributor {
	return &model.Contributor{
		ID:                model.ContributorID(d.ID),
		UserID:            d.UserID,
		Name:              d.Name,
		Email:             d.Email,
		RelationshipType:  types.RelationshipType(d.RelationshipType),
		RelationshipYears: d.RelationshipYears,
		CreatedAt:         d.CreatedAt,
	}
}

type contributorRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newContributorRepository(client *firestore.Client) *contributorRepository {
	return &contributorRepository{client: client}
}

func (r *contributorRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionContributors))
}

func (r *contributorRepository) Create(ctx context.Context, contributor *model.Contributor) (*model.Contributor, error) {
	created := *contributor
	if created.ID == "" {
		created.ID = model.NewContributorID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toContributorDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create contributor", goerr.V(model.ContributorIDKey, created.ID))
	}

	return &created, nil
}

func (r *contributorRepository) Get(ctx context.Context, contributorID model.ContributorID) (*model.Contributor, error) {
	doc, err := r.collection().Doc(string(contributorID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "contributor not found", goerr.V(model.ContributorIDKey, contributorID))
		}
		return nil, goerr.Wrap(err, "failed to get contributor", goerr.V(model.ContributorIDKey, contributorID))
	}

	var d contributorDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal contributor", goerr.V(model.ContributorIDKey, contributorID))
	}

	return fromContributorDoc(&d), nil
}

func (r *contributorRepository) ListByUser(ctx context.Context, userID string) ([]*model.Contributor, error) {
	iter := r.collection().
		Where("user_id", "==", userID).
		OrderBy("name", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	contributors := make([]*model.Contributor, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate contributors", goerr.V("user_id", userID))
		}

		var d contributorDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal contributor", goerr.V("doc_id", doc.Ref.ID))
		}
		contributors = append(contributors, fromContributorDoc(&d))
	}

	return contributors, nil
}
