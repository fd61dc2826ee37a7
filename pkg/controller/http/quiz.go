package http

import (
	"net/http"

	"github.com/memoraid/memoraid/pkg/domain/model"
)

type saveQuizAttemptRequest struct {
	PatientID      string `json:"patient_id"`
	MemoryID       string `json:"memory_id"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalQuestions int    `json:"total_questions"`
}

type saveQuizAttemptResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    quizAttemptResponse `json:"data"`
}

func (s *Server) saveQuizAttemptHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveQuizAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if req.PatientID == "" {
		if patientID, err := currentPatientID(ctx); err == nil {
			req.PatientID = patientID
		}
	}

	created, err := s.uc.Quiz.SaveAttempt(ctx, &model.QuizAttempt{
		PatientID:      req.PatientID,
		MemoryID:       model.MemoryID(req.MemoryID),
		Score:          req.Score,
		CorrectAnswers: req.CorrectAnswers,
		TotalQuestions: req.TotalQuestions,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, saveQuizAttemptResponse{
		Success: true,
		Message: "Quiz attempt saved successfully",
		Data:    toQuizAttemptResponse(created),
	})
}

func (s *Server) listQuizAttemptsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patientID, err := currentPatientID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	attempts, err := s.uc.Quiz.ListAttempts(ctx, patientID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := make([]quizAttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		resp = append(resp, toQuizAttemptResponse(a))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
