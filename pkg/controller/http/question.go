package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/usecase"
)

func (s *Server) listQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	questions, err := s.uc.Question.ListByMemory(ctx, model.MemoryID(chi.URLParam(r, "memoryId")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toQuestionResponses(questions))
}

func (s *Server) dailyQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patientID, err := currentPatientID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// Zero lets the use case apply its configured default
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "limit must be a positive integer",
				goerr.V("limit", v)))
			return
		}
		limit = n
	}

	questions, err := s.uc.Question.Daily(ctx, patientID, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toQuestionResponses(questions))
}
