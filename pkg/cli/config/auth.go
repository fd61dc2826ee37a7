package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/memoraid/memoraid/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Auth holds CLI flags for token validation
type Auth struct {
	jwtSecret     string
	jwtIssuer     string
	noAuthPatient string
	noAuthEmail   string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "HS256 secret used to verify bearer and share tokens",
			Category:    "Authentication",
			Sources:     cli.EnvVars("MEMORAID_JWT_SECRET"),
			Destination: &x.jwtSecret,
		},
		&cli.StringFlag{
			Name:        "jwt-issuer",
			Usage:       "Required iss claim of tokens (optional)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("MEMORAID_JWT_ISSUER"),
			Destination: &x.jwtIssuer,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified patient ID (development only). Example: --no-auth=patient-001",
			Category:    "Authentication",
			Sources:     cli.EnvVars("MEMORAID_NO_AUTH"),
			Destination: &x.noAuthPatient,
		},
		&cli.StringFlag{
			Name:        "no-auth-email",
			Usage:       "Email of the no-auth patient",
			Category:    "Authentication",
			Sources:     cli.EnvVars("MEMORAID_NO_AUTH_EMAIL"),
			Destination: &x.noAuthEmail,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("jwt_secret.len", len(x.jwtSecret)),
		slog.String("jwt_issuer", x.jwtIssuer),
		slog.String("no_auth", x.noAuthPatient),
	)
}

// IsNoAuthMode returns true if no-auth mode is enabled
func (x *Auth) IsNoAuthMode() bool {
	return x.noAuthPatient != ""
}

// NewAuthUseCase creates the JWT auth use case. It is also used to issue
// tokens from the CLI.
func (x *Auth) NewAuthUseCase() (*usecase.AuthUseCase, error) {
	if x.jwtSecret == "" {
		return nil, goerr.Wrap(ErrMissingRequired, "jwt-secret is required", goerr.V(FlagKey, "jwt-secret"))
	}

	var opts []usecase.AuthOption
	if x.jwtIssuer != "" {
		opts = append(opts, usecase.WithIssuer(x.jwtIssuer))
	}
	authUC, err := usecase.NewAuthUseCase([]byte(x.jwtSecret), opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create auth use case")
	}
	return authUC, nil
}

// Configure returns the NoAuthnUseCase in no-auth mode and the JWT auth use
// case otherwise
func (x *Auth) Configure() (usecase.AuthUseCaseInterface, error) {
	if x.noAuthPatient != "" {
		if x.jwtSecret != "" {
			logging.Default().Warn("--no-auth is set, ignoring --jwt-secret")
		}
		return usecase.NewNoAuthnUseCase(x.noAuthPatient, x.noAuthEmail), nil
	}

	if x.jwtSecret == "" {
		return nil, goerr.Wrap(ErrMissingRequired, "authentication is required: set --jwt-secret or use --no-auth",
			goerr.V(FlagKey, "jwt-secret"))
	}
	return x.NewAuthUseCase()
}
