package profile_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/profile"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	profile_mocks "github.com/Astemirdum/library-view/view/internal/service/profile/mocks"
)

const ttl = 5 * time.Second

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newCache(t *testing.T) (*profile.Cache, *profile_mocks.MockFetcher, *fakeClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := profile_mocks.NewMockFetcher(ctrl)
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return profile.New(zap.NewNop(), api, ttl, profile.WithClock(clock.Now)), api, clock
}

func member(name string) model.Profile {
	return model.Profile{
		User:   model.User{ID: 7, Email: "ann@example.com", Role: model.RoleMember},
		Member: &model.Member{ID: 3, Name: name},
	}
}

func TestCache_ConcurrentCallsShareOneFetch(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	release := make(chan struct{})
	api.EXPECT().GetProfile(gomock.Any()).DoAndReturn(func(ctx context.Context) (model.Profile, error) {
		<-release
		return member("Ann"), nil
	}).Times(1)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]model.Profile, callers)
	errCh := make(chan error, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := cache.Get(context.Background(), false)
			errCh <- err
			results[i] = p
		}()
	}
	close(release)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
	for _, p := range results {
		require.Equal(t, "Ann", p.Member.Name)
	}
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()
	cache, api, clock := newCache(t)
	ctx := context.Background()

	api.EXPECT().GetProfile(gomock.Any()).Return(member("Ann"), nil).Times(1)
	_, err := cache.Get(ctx, false)
	require.NoError(t, err)

	clock.Advance(ttl - time.Millisecond)
	p, err := cache.Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "Ann", p.Member.Name)

	clock.Advance(time.Millisecond)
	api.EXPECT().GetProfile(gomock.Any()).Return(member("Anna"), nil).Times(1)
	p, err = cache.Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "Anna", p.Member.Name)
}

func TestCache_ForceRefreshBypassesCache(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Ann"), nil),
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Anna"), nil),
	)
	_, err := cache.Get(ctx, false)
	require.NoError(t, err)
	p, err := cache.Get(ctx, true)
	require.NoError(t, err)
	require.Equal(t, "Anna", p.Member.Name)
}

func TestCache_ForcedCallJoinsInFlightFetch(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().GetProfile(gomock.Any()).DoAndReturn(func(ctx context.Context) (model.Profile, error) {
		close(started)
		<-release
		return member("Ann"), nil
	}).Times(1)

	first := make(chan model.Profile, 1)
	go func() {
		p, _ := cache.Get(context.Background(), false)
		first <- p
	}()
	<-started

	forced := make(chan model.Profile, 1)
	go func() {
		p, _ := cache.Get(context.Background(), true)
		forced <- p
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.Equal(t, "Ann", (<-first).Member.Name)
	require.Equal(t, "Ann", (<-forced).Member.Name)
}

func TestCache_UpdateInvalidates(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	ctx := context.Background()
	name := "Anna"
	upd := model.ProfileUpdate{Name: &name}

	gomock.InOrder(
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Ann"), nil),
		api.EXPECT().UpdateProfile(gomock.Any(), upd).Return(member("Anna"), nil),
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Anna"), nil),
	)
	_, err := cache.Get(ctx, false)
	require.NoError(t, err)

	_, err = cache.Update(ctx, upd)
	require.NoError(t, err)

	p, err := cache.Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "Anna", p.Member.Name)
}

func TestCache_FailedUpdateStillInvalidates(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Ann"), nil),
		api.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).Return(model.Profile{}, &errs.APIError{Status: 400, Detail: "Email already registered"}),
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Ann"), nil),
	)
	_, err := cache.Get(ctx, false)
	require.NoError(t, err)

	_, err = cache.Update(ctx, model.ProfileUpdate{})
	require.Equal(t, "Email already registered", errs.Message(err, ""))

	_, err = cache.Get(ctx, false)
	require.NoError(t, err)
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	ctx := context.Background()

	gomock.InOrder(
		api.EXPECT().GetProfile(gomock.Any()).Return(model.Profile{}, errors.New("connection refused")),
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Ann"), nil),
	)
	_, err := cache.Get(ctx, false)
	require.EqualError(t, err, "connection refused")

	p, err := cache.Get(ctx, false)
	require.NoError(t, err)
	require.Equal(t, "Ann", p.Member.Name)
}

func TestCache_ClearDetachesInFlightFetch(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	started := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		api.EXPECT().GetProfile(gomock.Any()).DoAndReturn(func(ctx context.Context) (model.Profile, error) {
			close(started)
			<-release
			return member("Ann"), nil
		}),
		api.EXPECT().GetProfile(gomock.Any()).Return(member("Bob"), nil),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = cache.Get(context.Background(), false)
	}()
	<-started
	cache.Clear()
	close(release)
	<-done

	p, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "Bob", p.Member.Name)
}

func TestCache_CallerCancellationDiscardsOnlyItsResult(t *testing.T) {
	t.Parallel()
	cache, api, _ := newCache(t)
	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().GetProfile(gomock.Any()).DoAndReturn(func(ctx context.Context) (model.Profile, error) {
		close(started)
		<-release
		require.NoError(t, ctx.Err())
		return member("Ann"), nil
	}).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := cache.Get(ctx, false)
		errCh <- err
	}()
	<-started
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	close(release)
	p, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	require.Equal(t, "Ann", p.Member.Name)
}
