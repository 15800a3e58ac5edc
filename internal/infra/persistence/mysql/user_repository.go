package mysql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	dom "example.com/adminctl/internal/domain/user"
)

const errDuplicateEntry = 1062

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Open connects to the MySQL server described by dsn. The users and
// user_roles tables are owned by the application schema and must exist.
func Open(ctx context.Context, dsn string) (*UserRepository, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping mysql: %v", dom.ErrStorageUnavailable, err)
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
	var username sql.NullString
	if u.Username != nil {
		username = sql.NullString{String: *u.Username, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, user_role_id, is_external_auth)
         VALUES (?, ?, ?, ?, ?)`,
		username, u.Email, u.PasswordHash, u.UserRoleID, u.IsExternallyAuthenticated,
	)
	if err != nil {
		return nil, classify(err)
	}
	id, err := insertedID(res)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

func insertedID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted user id: %w", err)
	}
	return id, nil
}

func classify(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
		return dom.ErrEmailAlreadyUsed
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", dom.ErrStorageUnavailable, err)
	}
	return err
}
