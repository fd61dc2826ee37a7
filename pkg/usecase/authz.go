package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/model/auth"
)

// authorizeRead checks the principal bound to ctx may read the patient's
// data. Calls without a principal, such as CLI commands, are trusted.
func authorizeRead(ctx context.Context, patientID string) error {
	p := auth.PrincipalFromContext(ctx)
	if p == nil || p.CanRead(patientID) {
		return nil
	}
	return goerr.Wrap(ErrAccessDenied, "principal cannot read patient data",
		goerr.V(model.PatientIDKey, patientID),
		goerr.V(ScopeKey, p.Scope))
}

// authorizeContribute checks the principal bound to ctx may submit data for
// the patient
func authorizeContribute(ctx context.Context, patientID string) error {
	p := auth.PrincipalFromContext(ctx)
	if p == nil || p.CanContribute(patientID) {
		return nil
	}
	return goerr.Wrap(ErrAccessDenied, "principal cannot contribute to patient",
		goerr.V(model.PatientIDKey, patientID),
		goerr.V(ScopeKey, p.Scope))
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
