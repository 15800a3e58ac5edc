package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "example.com/adminctl/internal/domain/user"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

// Open connects to the PostgreSQL database at databaseURL. The schema is
// owned by the application and must already exist.
func Open(ctx context.Context, databaseURL string) (*UserRepository, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	config.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: create connection pool: %v", dom.ErrStorageUnavailable, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping database: %v", dom.ErrStorageUnavailable, err)
	}

	return NewUserRepository(pool), nil
}

func (r *UserRepository) Close() error {
	if r != nil && r.db != nil {
		r.db.Close()
	}
	return nil
}

func (r *UserRepository) GetRoleIDByCode(ctx context.Context, code dom.RoleCode) (int64, error) {
	if !code.IsValid() {
		return 0, fmt.Errorf("%w: %q", dom.ErrInvalidRoleCode, code)
	}
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM user_roles WHERE code = $1`,
		string(code),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", dom.ErrRoleNotFound, code)
		}
		return 0, classify(err)
	}
	return id, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, user_role_id, is_external_auth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.UserRoleID,
		u.IsExternallyAuthenticated,
	).Scan(&id)
	if err != nil {
		return nil, classify(err)
	}

	u.ID = id
	return u, nil
}

func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return dom.ErrEmailAlreadyUsed
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) ||
		pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", dom.ErrStorageUnavailable, err)
	}
	return err
}
