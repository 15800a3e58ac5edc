// Package provision creates administrator accounts from operational entry
// points such as the create-admin-user command.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	dom "example.com/adminctl/internal/domain/user"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9._@+-]{1,255}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("username", validUsername); err != nil {
		panic(fmt.Sprintf("provision: register username rule: %v", err))
	}
	return v
}

func validUsername(fl validator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo           dom.Repository
	hasher         PasswordHasher
	logger         *slog.Logger
	minPasswordLen int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMinPasswordLength sets the minimum password length in bytes. Values
// below 1 are ignored: an empty password is never accepted.
func WithMinPasswordLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minPasswordLen = n
		}
	}
}

func NewService(repo dom.Repository, hasher PasswordHasher, opts ...Option) *Service {
	s := &Service{
		repo:           repo,
		hasher:         hasher,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		minPasswordLen: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateAdminInput struct {
	// Username is optional; nil means the email doubles as the login name.
	Username     *string
	Password     string
	Email        string
	ExternalAuth bool
}

// CreateAdminUser validates the input, hashes the password and submits a
// single ADMIN record to the repository. It never retries: duplicate and
// storage failures come back as returned by the repository.
func (s *Service) CreateAdminUser(ctx context.Context, in CreateAdminInput) (*dom.User, error) {
	u, err := s.newAdminUser(in)
	if err != nil {
		s.logger.Warn("admin user rejected", "error", err)
		return nil, err
	}
	log := s.logger.With("email", u.Email, "role", u.RoleCode)

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	roleID, err := s.repo.GetRoleIDByCode(ctx, dom.RoleCodeAdmin)
	if err != nil {
		log.Error("failed to resolve admin role", "error", err)
		return nil, err
	}
	u.UserRoleID = roleID

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, dom.ErrEmailAlreadyUsed) {
			log.Warn("admin user already exists")
		} else {
			log.Error("failed to create admin user", "error", err)
		}
		return nil, err
	}

	log.Info("admin user created", "user_id", created.ID)
	return created, nil
}

func (s *Service) newAdminUser(in CreateAdminInput) (*dom.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, dom.ErrInvalidEmail
	}

	var username *string
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if err := validate.Var(name, "required,username"); err != nil {
			return nil, dom.ErrInvalidUsername
		}
		username = &name
	}

	switch {
	case in.Password == "":
		return nil, dom.ErrEmptyPassword
	case len(in.Password) < s.minPasswordLen:
		return nil, dom.ErrPasswordTooShort
	case len(in.Password) > maxPasswordBytes:
		return nil, dom.ErrPasswordTooLong
	}

	return &dom.User{
		Username:                  username,
		Email:                     email,
		RoleCode:                  dom.RoleCodeAdmin,
		IsExternallyAuthenticated: in.ExternalAuth,
	}, nil
}
