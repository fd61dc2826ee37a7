package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type quizAttemptDoc struct {
	ID             string    `firestore:"id"`
	PatientID      string    `firestore:"patient_id"`
	MemoryID       string    `firestore:"memory_id"`
	Score          int       `firestore:"score"`
	CorrectAnswers int       `firestore:"correct_answers"`
	TotalQuestions int       `firestore:"total_questions"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func toQuizAttemptDoc(a *model.QuizAttempt) *quizAttemptDoc {
	return &quizAttemptDoc{
		ID:             string(a.ID),
		PatientID:      a.PatientID,
		MemoryID:       string(a.MemoryID),
		Score:          a.Score,
		CorrectAnswers: a.CorrectAnswers,
		TotalQuestions: a.TotalQuestions,
		CreatedAt:      a.CreatedAt,
	}
}

func fromQuizAttemptDoc(d *quizAttemptDoc) *model.QuizAttempt {
	return &model.QuizAttempt{
		ID:             model.QuizAttemptID(d.ID),
		PatientID:      d.PatientID,
		MemoryID:       model.MemoryID(d.MemoryID),
		Score:          d.Score,
		CorrectAnswers: d.CorrectAnswers,
		TotalQuestions: d.TotalQuestions,
		CreatedAt:      d.CreatedAt,
	}
}

type quizAttemptRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newQuizAttemptRepository(client *firestore.Client) *quizAttemptRepository {
	return &quizAttemptRepository{client: client}
}

func (r *quizAttemptRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(CollectionName(r.collectionPrefix, CollectionQuizAttempts))
}

func (r *quizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) (*model.QuizAttempt, error) {
	created := *attempt
	if created.ID == "" {
		created.ID = model.NewQuizAttemptID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toQuizAttemptDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create quiz attempt", goerr.V("quiz_attempt_id", created.ID))
	}

	return &created, nil
}

func (r *quizAttemptRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.QuizAttempt, error) {
	iter := r.collection().
		Where("patient_id", "==", patientID).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	attempts := make([]*model.QuizAttempt, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate quiz attempts", goerr.V(model.PatientIDKey, patientID))
		}

		var d quizAttemptDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal quiz attempt", goerr.V("doc_id", doc.Ref.ID))
		}
		attempts = append(attempts, fromQuizAttemptDoc(&d))
	}

	return attempts, nil
}
