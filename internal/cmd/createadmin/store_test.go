package createadmin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	dom "example.com/adminctl/internal/domain/user"
)

type fakeStore struct {
	closed bool
}

func (f *fakeStore) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	u.ID = 7
	return u, nil
}

func (f *fakeStore) GetRoleIDByCode(ctx context.Context, code dom.RoleCode) (int64, error) {
	return 1, nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func TestLazyStore_OpensOnFirstUseOnly(t *testing.T) {
	opens := 0
	inner := &fakeStore{}
	store := &lazyStore{open: func(context.Context) (userStore, error) {
		opens++
		return inner, nil
	}}
	require.Zero(t, opens)

	_, err := store.GetRoleIDByCode(context.Background(), dom.RoleCodeAdmin)
	require.NoError(t, err)
	u, err := store.Create(context.Background(), &dom.User{Email: "a@example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)
	require.Equal(t, 1, opens)

	require.NoError(t, store.Close())
	require.True(t, inner.closed)
}

func TestLazyStore_CloseWithoutOpen(t *testing.T) {
	store := &lazyStore{open: func(context.Context) (userStore, error) {
		t.Fatal("store must not be opened")
		return nil, nil
	}}

	require.NoError(t, store.Close())
}

func TestLazyStore_OpenFailureSurfaces(t *testing.T) {
	openErr := errors.New("dial refused")
	store := &lazyStore{open: func(context.Context) (userStore, error) {
		return nil, openErr
	}}

	_, err := store.GetRoleIDByCode(context.Background(), dom.RoleCodeAdmin)
	require.ErrorIs(t, err, openErr)
	_, err = store.Create(context.Background(), &dom.User{})
	require.ErrorIs(t, err, openErr)
	require.NoError(t, store.Close())
}
