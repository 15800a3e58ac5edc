package createadmin

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"example.com/adminctl/internal/platform/config"
)

// Config holds the command settings. Environment values act as defaults and
// flags override them.
type Config struct {
	DBDriver          string        `env:"ADMINCTL_DB_DRIVER" envDefault:"sqlite"`
	DBDSN             string        `env:"ADMINCTL_DB_DSN" envDefault:"data/adminctl.db"`
	BcryptCost        int           `env:"ADMINCTL_BCRYPT_COST" envDefault:"10"`
	PasswordMinLength int           `env:"ADMINCTL_PASSWORD_MIN_LENGTH" envDefault:"1"`
	JWTSecret         string        `env:"ADMINCTL_JWT_SECRET"`
	TokenTTL          time.Duration `env:"ADMINCTL_TOKEN_TTL" envDefault:"24h"`
	LogLevel          string        `env:"ADMINCTL_LOG_LEVEL" envDefault:"warn"`
	LogFormat         string        `env:"ADMINCTL_LOG_FORMAT" envDefault:"text"`

	EmailLogin bool
	External   bool
	IssueToken bool

	Username *string
	Password string
	Email    string
}

var errUsage = errors.New("usage")

const usageText = `Usage:
  create-admin-user [flags] <username> <password> <email>
  create-admin-user [flags] -email-login <email> <password>

Creates an administrator account. The role is always ADMIN.

Flags:
`

// ParseConfig loads environment defaults into a Config and then applies the
// flags and positional arguments in args.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errUsage, err)
	}

	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "user store backend: sqlite, mysql or postgres")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "store DSN, or file path for sqlite")
	fs.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "bcrypt cost for the password hash")
	fs.BoolVar(&cfg.EmailLogin, "email-login", false, "take <email> <password> only; the email is the login name")
	fs.BoolVar(&cfg.External, "external", false, "mark the account as authenticated by an external directory")
	fs.BoolVar(&cfg.IssueToken, "issue-token", false, "print a signed bootstrap token for the new account (needs ADMINCTL_JWT_SECRET)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if cfg.EmailLogin {
		if len(rest) != 2 {
			return Config{}, fmt.Errorf("%w: expected <email> <password>, got %d arguments", errUsage, len(rest))
		}
		cfg.Email, cfg.Password = rest[0], rest[1]
	} else {
		if len(rest) != 3 {
			return Config{}, fmt.Errorf("%w: expected <username> <password> <email>, got %d arguments", errUsage, len(rest))
		}
		username := rest[0]
		cfg.Username, cfg.Password, cfg.Email = &username, rest[1], rest[2]
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch cfg.DBDriver {
	case driverSQLite, driverMySQL, driverPostgres:
	default:
		return Config{}, fmt.Errorf("%w: unknown db driver %q", errUsage, cfg.DBDriver)
	}
	if cfg.IssueToken && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("%w: -issue-token requires ADMINCTL_JWT_SECRET", errUsage)
	}

	return cfg, nil
}
