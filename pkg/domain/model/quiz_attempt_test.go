package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/memoraid/memoraid/pkg/domain/model"
)

func TestQuizAttempt_Validate(t *testing.T) {
	tests := []struct {
		name    string
		attempt model.QuizAttempt
		wantErr bool
	}{
		{"valid", model.QuizAttempt{PatientID: "p", MemoryID: "m", Score: 10, CorrectAnswers: 2, TotalQuestions: 5}, false},
		{"all zero counters", model.QuizAttempt{PatientID: "p", MemoryID: "m"}, false},
		{"missing memory", model.QuizAttempt{PatientID: "p", TotalQuestions: 5}, true},
		{"negative score", model.QuizAttempt{PatientID: "p", MemoryID: "m", Score: -1}, true},
		{"more correct than total", model.QuizAttempt{PatientID: "p", MemoryID: "m", CorrectAnswers: 6, TotalQuestions: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.attempt.Validate()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrInvalidQuizAttempt)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
