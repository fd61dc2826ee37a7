package auth

import "context"

// Scope is the capability a validated token grants
type Scope string

const (
	// ScopeUser is granted by a patient's bearer token
	ScopeUser Scope = "user"

	// ScopeShare is granted by a share token handed to contributors. It only
	// allows submitting contributors, photos and memories for the patient.
	ScopeShare Scope = "share"
)

// Principal is the authenticated caller. PatientID is the patient whose
// data the caller may access.
type Principal struct {
	PatientID string
	Email     string
	Scope     Scope
}

// CanRead reports whether the principal may read the given patient's data
func (p *Principal) CanRead(patientID string) bool {
	return p != nil && p.Scope == ScopeUser && p.PatientID == patientID
}

// CanContribute reports whether the principal may submit memories for the
// given patient
func (p *Principal) CanContribute(patientID string) bool {
	return p != nil && p.PatientID == patientID
}

type ctxPrincipalKey struct{}

// ContextWithPrincipal returns a new context carrying the principal
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey{}, p)
}

// PrincipalFromContext returns the principal bound to ctx, or nil
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(ctxPrincipalKey{}).(*Principal)
	return p
}
