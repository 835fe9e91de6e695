package profile

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate go run github.com/golang/mock/mockgen -source=profile.go -destination=mocks/mock.go

type Fetcher interface {
	GetProfile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (model.Profile, error)
}

type Option func(*Cache)

// WithClock replaces time.Now, tests drive TTL expiry through it.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Cache is the process wide read-through cache of the current user's profile.
// At most one GET /profile is in flight at any time: concurrent callers,
// forced or not, share the running request and its outcome. Failures are
// never cached.
type Cache struct {
	log   *zap.Logger
	api   Fetcher
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu        sync.Mutex
	value     *model.Profile
	fetchedAt time.Time
	// gen is bumped by every invalidation; a fetch started under an older
	// generation must not repopulate the cache.
	gen uint64
}

func New(log *zap.Logger, api Fetcher, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{
		log: log.Named("profile"),
		api: api,
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached profile while it is younger than the TTL unless
// forceRefresh is set. A caller whose ctx is done gets ctx.Err() while the
// shared request keeps running for the others.
func (c *Cache) Get(ctx context.Context, forceRefresh bool) (model.Profile, error) {
	c.mu.Lock()
	if !forceRefresh && c.value != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		p := *c.value
		c.mu.Unlock()
		return p, nil
	}
	gen := c.gen
	c.mu.Unlock()

	ch := c.group.DoChan(flightKey(gen), func() (interface{}, error) {
		p, err := c.api.GetProfile(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.value = &p
			c.fetchedAt = c.now()
		}
		c.mu.Unlock()
		return p, nil
	})

	select {
	case <-ctx.Done():
		return model.Profile{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return model.Profile{}, res.Err
		}
		if res.Shared {
			c.log.Debug("joined in-flight profile fetch")
		}
		return res.Val.(model.Profile), nil
	}
}

// Update writes the profile and invalidates the cache whatever the outcome,
// so the next Get goes to the network.
func (c *Cache) Update(ctx context.Context, upd model.ProfileUpdate) (model.Profile, error) {
	defer c.Clear()
	p, err := c.api.UpdateProfile(ctx, upd)
	if err != nil {
		return model.Profile{}, errors.Wrap(err, "update profile")
	}
	return p, nil
}

// Clear drops the cached value and detaches any in-flight fetch.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = nil
	c.fetchedAt = time.Time{}
	c.gen++
}

func flightKey(gen uint64) string {
	return "profile:" + strconv.FormatUint(gen, 10)
}
