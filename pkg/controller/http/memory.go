package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/memoraid/memoraid/pkg/utils/safe"
)

// photoFormField is the multipart field carrying an uploaded photo
const photoFormField = "photo"

type createMemoryRequest struct {
	ContributorID    string `json:"contributor_id"`
	PatientID        string `json:"patient_id"`
	PhotoURL         string `json:"photo_url"`
	Description      string `json:"description"`
	BriefDescription string `json:"brief_description"`
	EventDate        string `json:"event_date"`
}

type createMemoryResponse struct {
	Memory         memoryResponse     `json:"memory"`
	Questions      []questionResponse `json:"questions,omitempty"`
	QuestionsError string             `json:"questions_error,omitempty"`
}

type uploadPhotoResponse struct {
	URL string `json:"url"`
}

type regenerateResponse struct {
	Questions []questionResponse `json:"questions"`
}

func (s *Server) createMemoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createMemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	// Share tokens are bound to one patient, so the patient may be omitted
	if req.PatientID == "" {
		if patientID, err := currentPatientID(ctx); err == nil {
			req.PatientID = patientID
		}
	}

	result, err := s.uc.Memory.Create(ctx, usecase.CreateMemoryInput{
		ContributorID:    model.ContributorID(req.ContributorID),
		PatientID:        req.PatientID,
		PhotoURL:         req.PhotoURL,
		Description:      req.Description,
		BriefDescription: req.BriefDescription,
		EventDate:        req.EventDate,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := createMemoryResponse{Memory: toMemoryResponse(result.Memory)}
	if result.QuestionsError != nil {
		resp.QuestionsError = result.QuestionsError.Error()
	} else {
		resp.Questions = toQuestionResponses(result.Questions)
	}
	writeJSON(ctx, w, http.StatusCreated, resp)
}

func (s *Server) uploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		writeError(ctx, w, goerr.Wrap(errors.Join(usecase.ErrInvalidInput, err), "failed to parse upload"))
		return
	}

	file, header, err := r.FormFile(photoFormField)
	if err != nil {
		writeError(ctx, w, goerr.Wrap(errors.Join(usecase.ErrInvalidInput, err), "photo is required"))
		return
	}
	defer safe.Close(ctx, file)

	patientID := r.FormValue("patient_id")
	if patientID == "" {
		if id, err := currentPatientID(ctx); err == nil {
			patientID = id
		}
	}

	url, err := s.uc.Memory.UploadPhoto(ctx, patientID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, uploadPhotoResponse{URL: url})
}

func (s *Server) listMyMemoriesHandler(w http.ResponseWriter, r *http.Request) {
	patientID, err := currentPatientID(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}
	s.writeMemories(w, r, patientID)
}

func (s *Server) listMemoriesHandler(w http.ResponseWriter, r *http.Request) {
	s.writeMemories(w, r, chi.URLParam(r, "userId"))
}

func (s *Server) writeMemories(w http.ResponseWriter, r *http.Request, patientID string) {
	ctx := r.Context()

	memories, err := s.uc.Memory.ListByPatient(ctx, patientID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := make([]memoryResponse, 0, len(memories))
	for _, m := range memories {
		resp = append(resp, toMemoryResponse(m))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) getMemoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memory, err := s.uc.Memory.Get(ctx, model.MemoryID(chi.URLParam(r, "memoryId")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, toMemoryResponse(memory))
}

func (s *Server) deleteMemoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.uc.Memory.Delete(ctx, model.MemoryID(chi.URLParam(r, "memoryId"))); err != nil {
		writeError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) regenerateQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	questions, err := s.uc.Memory.Regenerate(ctx, model.MemoryID(chi.URLParam(r, "memoryId")))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, regenerateResponse{Questions: toQuestionResponses(questions)})
}
