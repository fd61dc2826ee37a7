package usecase

import (
	"context"

	"github.com/memoraid/memoraid/pkg/domain/model/auth"
)

// NoAuthnUseCase authenticates every request as a fixed patient (for development/testing)
type NoAuthnUseCase struct {
	patientID string
	email     string
}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance for the patient
func NewNoAuthnUseCase(patientID, email string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		patientID: patientID,
		email:     email,
	}
}

func (uc *NoAuthnUseCase) principal() *auth.Principal {
	return &auth.Principal{
		PatientID: uc.patientID,
		Email:     uc.email,
		Scope:     auth.ScopeUser,
	}
}

// Authenticate always returns the configured patient
func (uc *NoAuthnUseCase) Authenticate(ctx context.Context, bearer string) (*auth.Principal, error) {
	return uc.principal(), nil
}

// AuthenticateShare always returns the configured patient
func (uc *NoAuthnUseCase) AuthenticateShare(ctx context.Context, token string) (*auth.Principal, error) {
	return uc.principal(), nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
