package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/cli/config"
	"github.com/memoraid/memoraid/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdToken() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue access tokens",
		Commands: []*cli.Command{
			cmdTokenShare(),
			cmdTokenUser(),
		},
	}
}

// tokenFlags are shared by the token subcommands
type tokenFlags struct {
	auth      config.Auth
	patientID string
	ttl       time.Duration
}

func (x *tokenFlags) flags(defaultTTL time.Duration) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "patient-id",
			Aliases:     []string{"p"},
			Usage:       "Patient the token is bound to",
			Required:    true,
			Destination: &x.patientID,
		},
		&cli.DurationFlag{
			Name:        "ttl",
			Usage:       "Token lifetime",
			Value:       defaultTTL,
			Destination: &x.ttl,
		},
	}
	return append(flags, x.auth.Flags()...)
}

func (x *tokenFlags) authUseCase() (*usecase.AuthUseCase, error) {
	if x.auth.IsNoAuthMode() {
		return nil, goerr.New("tokens cannot be issued in no-auth mode")
	}
	return x.auth.NewAuthUseCase()
}

func printToken(c *cli.Command, token string) {
	w := c.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, token)
}

func cmdTokenShare() *cli.Command {
	var tf tokenFlags

	return &cli.Command{
		Name:  "share",
		Usage: "Issue a share token letting family and friends submit memories for a patient",
		Flags: tf.flags(usecase.DefaultShareTokenTTL),
		Action: func(ctx context.Context, c *cli.Command) error {
			authUC, err := tf.authUseCase()
			if err != nil {
				return err
			}

			token, err := authUC.IssueShareToken(tf.patientID, tf.ttl)
			if err != nil {
				return goerr.Wrap(err, "failed to issue share token")
			}
			printToken(c, token)
			return nil
		},
	}
}

func cmdTokenUser() *cli.Command {
	var tf tokenFlags
	var email string

	flags := tf.flags(24 * time.Hour)
	flags = append(flags, &cli.StringFlag{
		Name:        "email",
		Usage:       "Email claim of the token",
		Destination: &email,
	})

	return &cli.Command{
		Name:  "user",
		Usage: "Issue a patient bearer token (development and operations)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			authUC, err := tf.authUseCase()
			if err != nil {
				return err
			}

			token, err := authUC.IssueUserToken(tf.patientID, email, tf.ttl)
			if err != nil {
				return goerr.Wrap(err, "failed to issue user token")
			}
			printToken(c, token)
			return nil
		},
	}
}
