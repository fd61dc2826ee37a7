package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

// questionRow mirrors the stored shape of a question. Options are kept as
// their JSON encoding like in the questions collection.
type questionRow struct {
	ID                 model.QuestionID
	MemoryID           model.MemoryID
	PatientID          string
	QuestionText       string
	Options            string
	CorrectOptionIndex int
	CorrectAnswer      string
	Difficulty         types.Difficulty
	Points             types.Points
	CreatedAt          time.Time
}

func toQuestionRow(q *model.Question) (*questionRow, error) {
	options, err := q.OptionsJSON()
	if err != nil {
		return nil, err
	}
	return &questionRow{
		ID:                 q.ID,
		MemoryID:           q.MemoryID,
		PatientID:          q.PatientID,
		QuestionText:       q.QuestionText,
		Options:            options,
		CorrectOptionIndex: q.CorrectOptionIndex,
		CorrectAnswer:      q.CorrectAnswer,
		Difficulty:         q.Difficulty,
		Points:             q.Points,
		CreatedAt:          q.CreatedAt,
	}, nil
}

func fromQuestionRow(row *questionRow) (*model.Question, error) {
	options, err := model.DecodeOptions(row.Options)
	if err != nil {
		return nil, err
	}
	return &model.Question{
		ID:                 row.ID,
		MemoryID:           row.MemoryID,
		PatientID:          row.PatientID,
		QuestionText:       row.QuestionText,
		Options:            options,
		CorrectOptionIndex: row.CorrectOptionIndex,
		CorrectAnswer:      row.CorrectAnswer,
		Difficulty:         row.Difficulty,
		Points:             row.Points,
		CreatedAt:          row.CreatedAt,
	}, nil
}

type questionRepository struct {
	mu   sync.RWMutex
	rows map[model.QuestionID]*questionRow
}

func newQuestionRepository() *questionRepository {
	return &questionRepository{
		rows: make(map[model.QuestionID]*questionRow),
	}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []*model.Question) ([]*model.Question, error) {
	if len(questions) == 0 {
		return []*model.Question{}, nil
	}

	now := time.Now().UTC()
	rows := make([]*questionRow, 0, len(questions))
	seen := make(map[model.QuestionID]struct{}, len(questions))

	for _, q := range questions {
		row, err := toQuestionRow(q)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert question", goerr.V("question_id", q.ID))
		}
		if row.ID == "" {
			row.ID = model.NewQuestionID()
		}
		if _, dup := seen[row.ID]; dup {
			return nil, goerr.New("duplicated question ID in batch", goerr.V("question_id", row.ID))
		}
		seen[row.ID] = struct{}{}
		row.CreatedAt = now
		rows = append(rows, row)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Check the whole batch before inserting anything
	for _, row := range rows {
		if _, exists := r.rows[row.ID]; exists {
			return nil, goerr.New("question already exists", goerr.V("question_id", row.ID))
		}
	}

	created := make([]*model.Question, 0, len(rows))
	for _, row := range rows {
		q, err := fromQuestionRow(row)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert question row", goerr.V("question_id", row.ID))
		}
		created = append(created, q)
	}
	for _, row := range rows {
		r.rows[row.ID] = row
	}

	return created, nil
}

func (r *questionRepository) ListByMemory(ctx context.Context, memoryID model.MemoryID) ([]*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]*model.Question, 0)
	for _, row := range r.rows {
		if row.MemoryID != memoryID {
			continue
		}
		q, err := fromQuestionRow(row)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert question row", goerr.V("question_id", row.ID))
		}
		questions = append(questions, q)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i], questions[j]
		if a.Difficulty != b.Difficulty {
			return a.Difficulty < b.Difficulty
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return questions, nil
}

func (r *questionRepository) ListByPatient(ctx context.Context, patientID string, limit int) ([]*model.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]*model.Question, 0)
	for _, row := range r.rows {
		if row.PatientID != patientID {
			continue
		}
		q, err := fromQuestionRow(row)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to convert question row", goerr.V("question_id", row.ID))
		}
		questions = append(questions, q)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i], questions[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	if limit > 0 && len(questions) > limit {
		questions = questions[:limit]
	}

	return questions, nil
}

func (r *questionRepository) DeleteByMemory(ctx context.Context, memoryID model.MemoryID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, row := range r.rows {
		if row.MemoryID == memoryID {
			delete(r.rows, id)
			deleted++
		}
	}

	return deleted, nil
}
