package usecase

import (
	"context"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/model/auth"
)

const (
	claimEmail = "email"
	claimScope = "scope"

	// DefaultShareTokenTTL is the lifetime of issued share tokens
	DefaultShareTokenTTL = 30 * 24 * time.Hour
)

// AuthUseCaseInterface validates inbound credentials into a principal
type AuthUseCaseInterface interface {
	// Authenticate validates a patient bearer token
	Authenticate(ctx context.Context, bearer string) (*auth.Principal, error)

	// AuthenticateShare validates a share token handed to contributors
	AuthenticateShare(ctx context.Context, token string) (*auth.Principal, error)

	IsNoAuthn() bool
}

// AuthUseCase validates HS256 JWTs. The subject is the patient ID and the
// scope claim distinguishes patient tokens from share tokens.
type AuthUseCase struct {
	secret []byte
	issuer string
	now    func() time.Time
}

var _ AuthUseCaseInterface = &AuthUseCase{}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithIssuer requires and sets the iss claim
func WithIssuer(issuer string) AuthOption {
	return func(uc *AuthUseCase) {
		uc.issuer = issuer
	}
}

// WithClock overrides the clock used for token validation and issuance
func WithClock(now func() time.Time) AuthOption {
	return func(uc *AuthUseCase) {
		uc.now = now
	}
}

func NewAuthUseCase(secret []byte, options ...AuthOption) (*AuthUseCase, error) {
	if len(secret) == 0 {
		return nil, goerr.New("JWT secret is required")
	}

	uc := &AuthUseCase{
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range options {
		opt(uc)
	}

	return uc, nil
}

func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func (uc *AuthUseCase) Authenticate(ctx context.Context, bearer string) (*auth.Principal, error) {
	p, err := uc.parse(bearer)
	if err != nil {
		return nil, err
	}
	if p.Scope != auth.ScopeUser {
		return nil, goerr.Wrap(ErrInvalidToken, "token is not a user token", goerr.V(ScopeKey, p.Scope))
	}
	return p, nil
}

func (uc *AuthUseCase) AuthenticateShare(ctx context.Context, token string) (*auth.Principal, error) {
	p, err := uc.parse(token)
	if err != nil {
		return nil, err
	}
	// A user token also grants contribution rights
	return p, nil
}

func (uc *AuthUseCase) parse(raw string) (*auth.Principal, error) {
	if raw == "" {
		return nil, goerr.Wrap(ErrUnauthenticated, "token is empty")
	}

	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256, uc.secret),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(uc.now)),
		jwt.WithAcceptableSkew(10 * time.Second),
	}
	if uc.issuer != "" {
		opts = append(opts, jwt.WithIssuer(uc.issuer))
	}

	token, err := jwt.Parse([]byte(raw), opts...)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidToken, "failed to parse or verify JWT token", goerr.V("cause", err.Error()))
	}

	if token.Subject() == "" {
		return nil, goerr.Wrap(ErrInvalidToken, "sub claim not found in token")
	}

	p := &auth.Principal{
		PatientID: token.Subject(),
		Scope:     auth.ScopeUser,
	}

	if v, ok := token.Get(claimEmail); ok {
		if email, ok := v.(string); ok {
			p.Email = email
		}
	}
	if v, ok := token.Get(claimScope); ok {
		scope, ok := v.(string)
		if !ok {
			return nil, goerr.Wrap(ErrInvalidToken, "scope claim is not a string")
		}
		switch auth.Scope(scope) {
		case auth.ScopeUser, auth.ScopeShare:
			p.Scope = auth.Scope(scope)
		default:
			return nil, goerr.Wrap(ErrInvalidToken, "unknown scope", goerr.V(ScopeKey, scope))
		}
	}

	return p, nil
}

// IssueShareToken signs a share token letting contributors submit memories
// for the patient
func (uc *AuthUseCase) IssueShareToken(patientID string, ttl time.Duration) (string, error) {
	return uc.issue(patientID, "", auth.ScopeShare, ttl)
}

// IssueUserToken signs a patient token. It is meant for development and
// operational tooling; login is handled elsewhere.
func (uc *AuthUseCase) IssueUserToken(patientID, email string, ttl time.Duration) (string, error) {
	return uc.issue(patientID, email, auth.ScopeUser, ttl)
}

func (uc *AuthUseCase) issue(patientID, email string, scope auth.Scope, ttl time.Duration) (string, error) {
	if patientID == "" {
		return "", goerr.Wrap(ErrInvalidInput, "patient ID is required")
	}
	if ttl <= 0 {
		ttl = DefaultShareTokenTTL
	}

	now := uc.now()
	builder := jwt.NewBuilder().
		Subject(patientID).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Claim(claimScope, string(scope))
	if email != "" {
		builder = builder.Claim(claimEmail, email)
	}
	if uc.issuer != "" {
		builder = builder.Issuer(uc.issuer)
	}

	token, err := builder.Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}
