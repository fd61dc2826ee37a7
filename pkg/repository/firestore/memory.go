package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// memoryDoc is the Firestore document representation of model.Memory
type memoryDoc struct {
	ID               string    `firestore:"id"`
	ContributorID    string    `firestore:"contributor_id"`
	PatientID        string    `firestore:"patient_id"`
	PhotoURL         string    `firestore:"photo_url"`
	Description      string    `firestore:"description"`
	BriefDescription string    `firestore:"brief_description"`
	EventDate        string    `firestore:"event_date,omitempty"`
	CreatedAt        time.Time `firestore:"created_at"`
}

func toMemoryDoc(m *model.Memory) *memoryDoc {
	return &memoryDoc{
		ID:               string(m.ID),
		ContributorID:    string(m.ContributorID),
		PatientID:        m.PatientID,
		PhotoURL:         m.PhotoURL,
		Description:      m.Description,
		BriefDescription: m.BriefDescription,
		EventDate:        m.EventDate,
		CreatedAt:        m.CreatedAt,
	}
}

func fromMemoryDoc(d *memoryDoc) *model.Memory {
	return &model.Memory{
		ID:               model.MemoryID(d.ID),
		ContributorID:    model.ContributorID(d.ContributorID),
		PatientID:        d.PatientID,
		PhotoURL:         d.PhotoURL,
		Description:      d.Description,
		BriefDescription: d.BriefDescription,
		EventDate:        d.EventDate,
		CreatedAt:        d.CreatedAt,
	}
}

type memoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMemoryRepository(client *firestore.Client) *memoryRepository {
	return &memoryRepository{client: client}
}

func (r *memoryRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionMemories))
}

func (r *memoryRepository) Create(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	created := *mem
	if created.ID == "" {
		created.ID = model.NewMemoryID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Create(ctx, toMemoryDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create memory", goerr.V(model.MemoryIDKey, created.ID))
	}

	return &created, nil
}

func (r *memoryRepository) Get(ctx context.Context, memoryID model.MemoryID) (*model.Memory, error) {
	doc, err := r.collection().Doc(string(memoryID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "memory not found", goerr.V(model.MemoryIDKey, memoryID))
		}
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V(model.MemoryIDKey, memoryID))
	}

	var d memoryDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal memory", goerr.V(model.MemoryIDKey, memoryID))
	}

	return fromMemoryDoc(&d), nil
}

func (r *memoryRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.Memory, error) {
	iter := r.collection().
		Where("patient_id", "==", patientID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	memories := make([]*model.Memory, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate memories", goerr.V(model.PatientIDKey, patientID))
		}

		var d memoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal memory", goerr.V("doc_id", doc.Ref.ID))
		}
		memories = append(memories, fromMemoryDoc(&d))
	}

	return memories, nil
}

func (r *memoryRepository) Delete(ctx context.Context, memoryID model.MemoryID) error {
	if _, err := r.collection().Doc(string(memoryID)).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "memory not found", goerr.V(model.MemoryIDKey, memoryID))
		}
		return goerr.Wrap(err, "failed to delete memory", goerr.V(model.MemoryIDKey, memoryID))
	}
	return nil
}
