package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// questionDoc is the Firestore document representation of model.Question.
// Options are stored as a JSON-encoded string.
type questionDoc struct {
	ID                 string    `firestore:"id"`
	MemoryID           string    `firestore:"memory_id"`
	PatientID          string    `firestore:"patient_id"`
	QuestionText       string    `firestore:"question_text"`
	Options            string    `firestore:"options"`
	CorrectOptionIndex int       `firestore:"correct_option_index"`
	CorrectAnswer      string    `firestore:"correct_answer"`
	Difficulty         int       `firestore:"difficulty"`
	Points             int       `firestore:"points"`
	CreatedAt          time.Time `firestore:"created_at"`
}

func toQuestionDoc(q *model.Question) (*questionDoc, error) {
	options, err := q.OptionsJSON()
	if err != nil {
		return nil, err
	}
	return &questionDoc{
		ID:                 string(q.ID),
		MemoryID:           string(q.MemoryID),
		PatientID:          q.PatientID,
		QuestionText:       q.QuestionText,
		Options:            options,
		CorrectOptionIndex: q.CorrectOptionIndex,
		CorrectAnswer:      q.CorrectAnswer,
		Difficulty:         int(q.Difficulty),
		Points:             int(q.Points),
		CreatedAt:          q.CreatedAt,
	}, nil
}

func fromQuestionDoc(d *questionDoc) (*model.Question, error) {
	options, err := model.DecodeOptions(d.Options)
	if err != nil {
		return nil, err
	}
	return &model.Question{
		ID:                 model.QuestionID(d.ID),
		MemoryID:           model.MemoryID(d.MemoryID),
		PatientID:          d.PatientID,
		QuestionText:       d.QuestionText,
		Options:            options,
		CorrectOptionIndex: d.CorrectOptionIndex,
		CorrectAnswer:      d.CorrectAnswer,
		Difficulty:         types.Difficulty(d.Difficulty),
		Points:             types.Points(d.Points),
		CreatedAt:          d.CreatedAt,
	}, nil
}

func docToQuestion(doc *firestore.DocumentSnapshot) (*model.Question, error) {
	var d questionDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal question", goerr.V("doc_id", doc.Ref.ID))
	}
	return fromQuestionDoc(&d)
}

type questionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newQuestionRepository(client *firestore.Client) *questionRepository {
	return &questionRepository{client: client}
}

func (r *questionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionQuestions))
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []*model.Question) ([]*model.Question, error) {
	if len(questions) == 0 {
		return []*model.Question{}, nil
	}

	now := time.Now().UTC()
	created := make([]*model.Question, 0, len(questions))
	docs := make([]*questionDoc, 0, len(questions))
	for _, q := range questions {
		copied := *q
		if copied.ID == "" {
			copied.ID = model.NewQuestionID()
		}
		copied.CreatedAt = now

		doc, err := toQuestionDoc(&copied)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert question", goerr.V("question_id", copied.ID))
		}
		created = append(created, &copied)
		docs = append(docs, doc)
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, doc := range docs {
			if err := tx.Create(r.collection().Doc(doc.ID), doc); err != nil {
				return goerr.Wrap(err, "failed to add question to transaction", goerr.V("question_id", doc.ID))
			}
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create questions", goerr.V("count", len(docs)))
	}

	return created, nil
}

func (r *questionRepository) ListByMemory(ctx context.Context, memoryID model.MemoryID) ([]*model.Question, error) {
	iter := r.collection().
		Where("memory_id", "==", string(memoryID)).
		OrderBy("difficulty", firestore.Asc).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	questions := make([]*model.Question, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions", goerr.V(model.MemoryIDKey, memoryID))
		}

		q, err := docToQuestion(doc)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func (r *questionRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*model.Question, error) {
	query := r.collection().
		Where("patient_id", "==", patientID).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	questions := make([]*model.Question, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate questions", goerr.V(model.PatientIDKey, patientID))
		}

		q, err := docToQuestion(doc)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func (r *questionRepository) DeleteByMemory(ctx context.Context, memoryID model.MemoryID) (int, error) {
	query := r.collection().Where("memory_id", "==", string(memoryID))

	var deleted int
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		deleted = 0

		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query questions")
		}

		for _, doc := range docs {
			if err := tx.Delete(doc.Ref); err != nil {
				return goerr.Wrap(err, "failed to add question deletion to transaction", goerr.V("doc_id", doc.Ref.ID))
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete questions", goerr.V(model.MemoryIDKey, memoryID))
	}

	return deleted, nil
}
