package createadmin

import (
	"context"

	dom "example.com/adminctl/internal/domain/user"
	"example.com/adminctl/internal/infra/persistence/mysql"
	"example.com/adminctl/internal/infra/persistence/postgres"
	"example.com/adminctl/internal/infra/persistence/sqlite"
)

const (
	driverSQLite   = "sqlite"
	driverMySQL    = "mysql"
	driverPostgres = "postgres"
)

type userStore interface {
	dom.Repository
	Close() error
}

func openStore(ctx context.Context, cfg Config) (userStore, error) {
	switch cfg.DBDriver {
	case driverMySQL:
		return mysql.Open(ctx, cfg.DBDSN)
	case driverPostgres:
		return postgres.Open(ctx, cfg.DBDSN)
	default:
		return sqlite.Open(ctx, cfg.DBDSN)
	}
}

// lazyStore defers connecting until the first repository call, so input
// rejected by the provisioner never touches the backing store.
type lazyStore struct {
	open  func(context.Context) (userStore, error)
	store userStore
}

func newLazyStore(cfg Config) *lazyStore {
	return &lazyStore{
		open: func(ctx context.Context) (userStore, error) {
			return openStore(ctx, cfg)
		},
	}
}

func (l *lazyStore) get(ctx context.Context) (userStore, error) {
	if l.store == nil {
		store, err := l.open(ctx)
		if err != nil {
			return nil, err
		}
		l.store = store
	}
	return l.store, nil
}

func (l *lazyStore) GetRoleIDByCode(ctx context.Context, code dom.RoleCode) (int64, error) {
	store, err := l.get(ctx)
	if err != nil {
		return 0, err
	}
	return store.GetRoleIDByCode(ctx, code)
}

func (l *lazyStore) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	store, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return store.Create(ctx, u)
}

func (l *lazyStore) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
