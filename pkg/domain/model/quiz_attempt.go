package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// QuizAttemptID is a UUID-based identifier for QuizAttempt
type QuizAttemptID string

// NewQuizAttemptID generates a new UUID v4 QuizAttemptID
func NewQuizAttemptID() QuizAttemptID {
	return QuizAttemptID(uuid.New().String())
}

// QuizAttempt is the result of a patient answering a memory's questions
type QuizAttempt struct {
	ID             QuizAttemptID
	PatientID      string
	MemoryID       MemoryID
	Score          int
	CorrectAnswers int
	TotalQuestions int
	CreatedAt      time.Time
}

// Validate checks required fields and counters
func (a *QuizAttempt) Validate() error {
	if a.PatientID == "" || a.MemoryID == "" {
		return goerr.Wrap(ErrInvalidQuizAttempt, "patient ID and memory ID are required")
	}
	if a.Score < 0 || a.CorrectAnswers < 0 || a.TotalQuestions < 0 {
		return goerr.Wrap(ErrInvalidQuizAttempt, "counters must not be negative",
			goerr.V("score", a.Score),
			goerr.V("correct_answers", a.CorrectAnswers),
			goerr.V("total_questions", a.TotalQuestions))
	}
	if a.CorrectAnswers > a.TotalQuestions {
		return goerr.Wrap(ErrInvalidQuizAttempt, "correct answers exceed total questions",
			goerr.V("correct_answers", a.CorrectAnswers),
			goerr.V("total_questions", a.TotalQuestions))
	}
	return nil
}
