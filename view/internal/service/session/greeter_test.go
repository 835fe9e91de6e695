package session_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const debounce = 30 * time.Millisecond

type fakeProfiles struct {
	calls   atomic.Int32
	profile model.Profile
	err     error
}

func (f *fakeProfiles) Get(context.Context, bool) (model.Profile, error) {
	f.calls.Add(1)
	return f.profile, f.err
}

type fakeUsers struct {
	calls atomic.Int32
	user  model.User
	err   error
}

func (f *fakeUsers) Me(context.Context) (model.User, error) {
	f.calls.Add(1)
	return f.user, f.err
}

func TestGreeter_Debounce(t *testing.T) {
	t.Parallel()
	store, _, _ := newStore(t)
	profiles := &fakeProfiles{profile: model.Profile{
		User:   model.User{ID: 7, Email: "ann@example.com"},
		Member: &model.Member{Name: "Ann Reader"},
	}}
	const delay = 150 * time.Millisecond
	g := session.NewGreeter(zap.NewNop(), store, profiles, &fakeUsers{}, delay)
	defer g.Close()

	for i := 0; i < 3; i++ {
		_, err := store.Begin(model.Token{AccessToken: "abc", Role: model.RoleMember, UserID: 7})
		require.NoError(t, err)
	}

	require.Empty(t, g.Name())
	require.Eventually(t, func() bool { return g.Name() == "Ann Reader" }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(2 * delay)
	require.EqualValues(t, 1, profiles.calls.Load())
}

func TestGreeter_LogoutCancelsPendingLookup(t *testing.T) {
	t.Parallel()
	store, _, _ := newStore(t)
	profiles := &fakeProfiles{profile: model.Profile{Member: &model.Member{Name: "Ann"}}}
	g := session.NewGreeter(zap.NewNop(), store, profiles, &fakeUsers{}, debounce)
	defer g.Close()

	_, err := store.Begin(model.Token{AccessToken: "abc", Role: model.RoleMember, UserID: 7})
	require.NoError(t, err)
	require.NoError(t, store.Logout())

	time.Sleep(4 * debounce)
	require.Zero(t, profiles.calls.Load())
	require.Empty(t, g.Name())
}

func TestGreeter_Fallbacks(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		role     model.Role
		profiles *fakeProfiles
		users    *fakeUsers
		want     string
	}{
		{
			name:     "profile email",
			role:     model.RoleAdmin,
			profiles: &fakeProfiles{profile: model.Profile{User: model.User{Email: "root@library.org"}}},
			users:    &fakeUsers{},
			want:     "root",
		},
		{
			name:     "auth me email",
			role:     model.RoleMember,
			profiles: &fakeProfiles{err: errors.New("boom")},
			users:    &fakeUsers{user: model.User{Email: "bob@example.com"}},
			want:     "bob",
		},
		{
			name:     "role default",
			role:     model.RoleAdmin,
			profiles: &fakeProfiles{err: errors.New("boom")},
			users:    &fakeUsers{err: errors.New("boom")},
			want:     "Admin",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, _, _ := newStore(t)
			g := session.NewGreeter(zap.NewNop(), store, tt.profiles, tt.users, debounce)
			defer g.Close()

			_, err := store.Begin(model.Token{AccessToken: "abc", Role: tt.role, UserID: 3})
			require.NoError(t, err)
			require.Eventually(t, func() bool { return g.Name() == tt.want }, time.Second, 5*time.Millisecond)
		})
	}
}

func TestGreeter_MemoizesPerUser(t *testing.T) {
	t.Parallel()
	store, _, _ := newStore(t)
	profiles := &fakeProfiles{profile: model.Profile{Member: &model.Member{Name: "Ann"}}}
	g := session.NewGreeter(zap.NewNop(), store, profiles, &fakeUsers{}, debounce)
	defer g.Close()

	_, err := store.Begin(model.Token{AccessToken: "abc", Role: model.RoleMember, UserID: 7})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return g.Name() == "Ann" }, time.Second, 5*time.Millisecond)

	_, err = store.Begin(model.Token{AccessToken: "def", Role: model.RoleMember, UserID: 7})
	require.NoError(t, err)
	time.Sleep(3 * debounce)
	require.Equal(t, "Ann", g.Name())
	require.EqualValues(t, 1, profiles.calls.Load())
}
