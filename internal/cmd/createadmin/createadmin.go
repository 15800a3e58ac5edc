// Package createadmin implements the create-admin-user command.
package createadmin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"example.com/adminctl/internal/infra/security"
	"example.com/adminctl/internal/platform/logging"
	"example.com/adminctl/internal/usecase/provision"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Run executes one provisioning attempt and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("create-admin-user", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	cfg, err := ParseConfig(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			fs.Usage()
		}
		return ExitUsage
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitUsage
	}

	store := newLazyStore(cfg)
	defer store.Close()

	svc := provision.NewService(
		store,
		security.NewBcryptService(cfg.BcryptCost),
		provision.WithLogger(logger),
		provision.WithMinPasswordLength(cfg.PasswordMinLength),
	)

	u, err := svc.CreateAdminUser(ctx, provision.CreateAdminInput{
		Username:     cfg.Username,
		Password:     cfg.Password,
		Email:        cfg.Email,
		ExternalAuth: cfg.External,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Unable to create your user: %v\n", err)
		return ExitFailure
	}
	fmt.Fprintf(stdout, "User created successfully (id=%d, email=%s)\n", u.ID, u.Email)

	if cfg.IssueToken {
		tokens, err := security.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			fmt.Fprintf(stderr, "Unable to issue token: %v\n", err)
			return ExitFailure
		}
		token, err := tokens.GenerateToken(u)
		if err != nil {
			fmt.Fprintf(stderr, "Unable to issue token: %v\n", err)
			return ExitFailure
		}
		fmt.Fprintf(stdout, "Token: %s\n", token)
	}

	return ExitOK
}
