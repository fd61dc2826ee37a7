package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

const (
	// QuestionsPerMemory is the number of questions requested per memory
	QuestionsPerMemory = 5

	// OptionCount is the number of options of every question
	OptionCount = 4

	// SentinelOption is the fixed last option of every question
	SentinelOption = "I don't remember"
)

// QuestionID is a UUID-based identifier for Question
type QuestionID string

// NewQuestionID generates a new UUID v4 QuestionID
func NewQuestionID() QuestionID {
	return QuestionID(uuid.New().String())
}

// QuestionDraft is a validated question that has not been persisted yet
type QuestionDraft struct {
	QuestionText       string
	Options            []string // Exactly OptionCount entries, last is SentinelOption
	CorrectOptionIndex int
	CorrectAnswer      string // Options[CorrectOptionIndex]
	Difficulty         types.Difficulty
	Points             types.Points
}

// Question is a persisted recall-practice question owned by a memory
type Question struct {
	ID                 QuestionID
	MemoryID           MemoryID
	PatientID          string
	QuestionText       string
	Options            []string
	CorrectOptionIndex int
	CorrectAnswer      string
	Difficulty         types.Difficulty
	Points             types.Points
	CreatedAt          time.Time
}

// NewQuestionFromDraft builds a Question row for the given memory
func NewQuestionFromDraft(memoryID MemoryID, patientID string, draft QuestionDraft) *Question {
	options := make([]string, len(draft.Options))
	copy(options, draft.Options)

	return &Question{
		ID:                 NewQuestionID(),
		MemoryID:           memoryID,
		PatientID:          patientID,
		QuestionText:       draft.QuestionText,
		Options:            options,
		CorrectOptionIndex: draft.CorrectOptionIndex,
		CorrectAnswer:      draft.CorrectAnswer,
		Difficulty:         draft.Difficulty,
		Points:             draft.Points,
	}
}

// OptionsJSON returns the options as the JSON-encoded string stored in the
// questions collection
func (q *Question) OptionsJSON() (string, error) {
	return EncodeOptions(q.Options)
}

// EncodeOptions serializes question options for storage
func EncodeOptions(options []string) (string, error) {
	if options == nil {
		options = []string{}
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode options")
	}
	return string(raw), nil
}

// DecodeOptions deserializes question options read from storage
func DecodeOptions(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var options []string
	if err := json.Unmarshal([]byte(s), &options); err != nil {
		return nil, goerr.Wrap(err, "failed to decode options", goerr.V("options", s))
	}
	return options, nil
}
