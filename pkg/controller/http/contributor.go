package http

import (
	"net/http"

	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

type createContributorRequest struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	RelationshipType  string `json:"relationship_type"`
	RelationshipYears int    `json:"relationship_years"`
}

type createContributorResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func (s *Server) createContributorHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createContributorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := s.uc.Contributor.Create(ctx, &model.Contributor{
		UserID:            req.UserID,
		Name:              req.Name,
		Email:             req.Email,
		RelationshipType:  types.RelationshipType(req.RelationshipType),
		RelationshipYears: req.RelationshipYears,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, createContributorResponse{
		Message: "Contributor created successfully",
		ID:      string(created.ID),
	})
}

func (s *Server) listContributorsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patientID, err := currentPatientID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contributors, err := s.uc.Contributor.ListByUser(ctx, patientID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	resp := make([]contributorResponse, 0, len(contributors))
	for _, c := range contributors {
		resp = append(resp, toContributorResponse(c))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}
