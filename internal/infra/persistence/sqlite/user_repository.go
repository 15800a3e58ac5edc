// Package sqlite implements the user store over a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	dom "example.com/adminctl/internal/domain/user"
	"example.com/adminctl/internal/infra/persistence/sqlite/schema"
)

type UserRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db, now: time.Now}
}

// Open opens the SQLite file at path, creating it and its parent directory
// when missing, and applies the bundled schema.
func Open(ctx context.Context, path string) (*UserRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create data dir: %v", dom.ErrStorageUnavailable, err)
		}
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite db: %v", dom.ErrStorageUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping sqlite db: %v", dom.ErrStorageUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, schema.SQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", classify(err))
	}

	return NewUserRepository(db), nil
}

func (r *UserRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *UserRepository) GetRoleIDByCode(ctx context.Context, code dom.RoleCode) (int64, error) {
	if !code.IsValid() {
		return 0, fmt.Errorf("%w: %q", dom.ErrInvalidRoleCode, code)
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM user_roles WHERE code = ?`,
		string(code),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", dom.ErrRoleNotFound, code)
		}
		return 0, classify(err)
	}
	return id, nil
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, user_role_id, is_external_auth, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		nullString(u.Username), u.Email, u.PasswordHash, u.UserRoleID, u.IsExternallyAuthenticated, r.now().UTC().UnixMilli(),
	)
	if err != nil {
		return nil, classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// classify maps SQLite result codes onto the domain error taxonomy.
func classify(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	code := sqliteErr.Code()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"):
		return dom.ErrEmailAlreadyUsed
	case code&0xff == sqlite3.SQLITE_BUSY,
		code&0xff == sqlite3.SQLITE_LOCKED,
		code&0xff == sqlite3.SQLITE_CANTOPEN,
		code&0xff == sqlite3.SQLITE_IOERR,
		code&0xff == sqlite3.SQLITE_READONLY:
		return fmt.Errorf("%w: %v", dom.ErrStorageUnavailable, err)
	default:
		return err
	}
}
