package http

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model/auth"
	"github.com/memoraid/memoraid/pkg/usecase"
)

// currentPatientID returns the patient bound to the request's principal
func currentPatientID(ctx context.Context) (string, error) {
	p := auth.PrincipalFromContext(ctx)
	if p == nil || p.PatientID == "" {
		return "", goerr.Wrap(usecase.ErrUnauthenticated, "no authenticated patient")
	}
	return p.PatientID, nil
}
