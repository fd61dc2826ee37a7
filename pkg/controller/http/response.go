package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/memoraid/memoraid/pkg/utils/errutil"
	"github.com/memoraid/memoraid/pkg/utils/logging"
)

type memoryResponse struct {
	ID               string    `json:"id"`
	ContributorID    string    `json:"contributor_id"`
	PatientID        string    `json:"patient_id"`
	PhotoURL         string    `json:"photo_url"`
	Description      string    `json:"description"`
	BriefDescription string    `json:"brief_description"`
	EventDate        string    `json:"event_date,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func toMemoryResponse(m *model.Memory) memoryResponse {
	return memoryResponse{
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

type questionResponse struct {
	ID                 string    `json:"id"`
	MemoryID           string    `json:"memory_id"`
	PatientID          string    `json:"patient_id"`
	QuestionText       string    `json:"question_text"`
	Options            []string  `json:"options"`
	CorrectOptionIndex int       `json:"correct_option_index"`
	CorrectAnswer      string    `json:"correct_answer"`
	Difficulty         int       `json:"difficulty"`
	Points             int       `json:"points"`
	CreatedAt          time.Time `json:"created_at"`
}

func toQuestionResponses(questions []*model.Question) []questionResponse {
	resp := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, questionResponse{
			ID:                 string(q.ID),
			MemoryID:           string(q.MemoryID),
			PatientID:          q.PatientID,
			QuestionText:       q.QuestionText,
			Options:            q.Options,
			CorrectOptionIndex: q.CorrectOptionIndex,
			CorrectAnswer:      q.CorrectAnswer,
			Difficulty:         int(q.Difficulty),
			Points:             int(q.Points),
			CreatedAt:          q.CreatedAt,
		})
	}
	return resp
}

type contributorResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	RelationshipType  string    `json:"relationship_type"`
	RelationshipYears int       `json:"relationship_years"`
	CreatedAt         time.Time `json:"created_at"`
}

func toContributorResponse(c *model.Contributor) contributorResponse {
	return contributorResponse{
		ID:                string(c.ID),
		UserID:            c.UserID,
		Name:              c.Name,
		Email:             c.Email,
		RelationshipType:  string(c.RelationshipType),
		RelationshipYears: c.RelationshipYears,
		CreatedAt:         c.CreatedAt,
	}
}

type quizAttemptResponse struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patient_id"`
	MemoryID       string    `json:"memory_id"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

func toQuizAttemptResponse(a *model.QuizAttempt) quizAttemptResponse {
	return quizAttemptResponse{
		ID:             string(a.ID),
		PatientID:      a.PatientID,
		MemoryID:       string(a.MemoryID),
		Score:          a.Score,
		CorrectAnswers: a.CorrectAnswers,
		TotalQuestions: a.TotalQuestions,
		CreatedAt:      a.CreatedAt,
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("failed to write response", "error", err)
	}
}

// statusCode maps an error to the HTTP status reported to clients
func statusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidMemory),
		errors.Is(err, model.ErrInvalidContributor),
		errors.Is(err, model.ErrInvalidQuizAttempt),
		errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrUnauthenticated),
		errors.Is(err, usecase.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, model.ErrUpstreamUnavailable),
		errors.Is(err, model.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusCode(err))
}

// decodeJSON reads a JSON request body into v
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Join(usecase.ErrInvalidInput, err)
	}
	return nil
}
