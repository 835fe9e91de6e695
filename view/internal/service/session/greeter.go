package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/library-view/view/internal/model"
	"go.uber.org/zap"
)

type ProfileSource interface {
	Get(ctx context.Context, forceRefresh bool) (model.Profile, error)
}

type UserSource interface {
	Me(ctx context.Context) (model.User, error)
}

// Greeter resolves the display name of the logged in user. The lookup runs
// a fixed delay after the last session change; a newer change re-arms the
// timer and a logout cancels it for good.
type Greeter struct {
	log      *zap.Logger
	store    *Store
	profiles ProfileSource
	users    UserSource
	delay    time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	epoch   uint64
	current string
	names   map[int]string

	unsubscribe func()
}

func NewGreeter(log *zap.Logger, store *Store, profiles ProfileSource, users UserSource, delay time.Duration) *Greeter {
	g := &Greeter{
		log:      log.Named("greeter"),
		store:    store,
		profiles: profiles,
		users:    users,
		delay:    delay,
		names:    make(map[int]string),
	}
	g.unsubscribe = store.Subscribe(g.onEvent)
	if _, ok := store.Current(); ok {
		g.arm()
	}
	return g
}

// Name is "" until the lookup finished and after logout.
func (g *Greeter) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *Greeter) Close() {
	g.unsubscribe()
	g.cancel(false)
}

func (g *Greeter) onEvent(e Event) {
	switch e {
	case LoggedIn:
		g.arm()
	case Changed:
		if _, ok := g.store.Current(); ok {
			g.arm()
			return
		}
		g.cancel(true)
	case LoggedOut, Expired:
		g.cancel(true)
	}
}

func (g *Greeter) arm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.epoch++
	epoch := g.epoch
	g.timer = time.AfterFunc(g.delay, func() { g.resolve(epoch) })
}

func (g *Greeter) cancel(forget bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.epoch++
	g.current = ""
	if forget {
		g.names = make(map[int]string)
	}
}

func (g *Greeter) resolve(epoch uint64) {
	sess, ok := g.store.Current()
	if !ok {
		return
	}
	g.mu.Lock()
	if epoch != g.epoch {
		g.mu.Unlock()
		return
	}
	name, known := g.names[sess.User.UserID]
	g.mu.Unlock()

	if !known {
		name = g.lookup(sess)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if epoch != g.epoch {
		return
	}
	g.names[sess.User.UserID] = name
	g.current = name
}

func (g *Greeter) lookup(sess Session) string {
	ctx := context.Background()
	p, err := g.profiles.Get(ctx, false)
	if err == nil {
		if p.Member != nil && p.Member.Name != "" {
			return p.Member.Name
		}
		if p.User.Email != "" {
			return localPart(p.User.Email)
		}
	} else {
		g.log.Debug("profile lookup failed", zap.Error(err))
		if u, err := g.users.Me(ctx); err == nil && u.Email != "" {
			return localPart(u.Email)
		}
	}
	if sess.IsAdmin() {
		return "Admin"
	}
	return "Member"
}

func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
