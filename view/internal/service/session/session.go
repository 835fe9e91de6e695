package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Astemirdum/library-view/pkg/kvstore"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

type Event uint8

const (
	LoggedIn Event = iota + 1
	LoggedOut
	// Expired is a teardown caused by a 401 answer.
	Expired
	// Changed means another process rewrote the session.
	Changed
)

func (e Event) String() string {
	switch e {
	case LoggedIn:
		return "logged_in"
	case LoggedOut:
		return "logged_out"
	case Expired:
		return "expired"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// User is the persisted user record.
type User struct {
	Role   model.Role `json:"role"`
	UserID int        `json:"user_id"`
}

type Session struct {
	Token string
	User  User
}

func (s Session) IsAdmin() bool {
	return s.User.Role == model.RoleAdmin
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(path string)
}

// Store keeps the session in a key-value file and tells subscribers about
// every transition.
type Store struct {
	log *zap.Logger
	kv  *kvstore.Store
	nav Navigator

	// mu serializes transitions
	mu sync.Mutex

	subsMu sync.RWMutex
	subs   map[uint64]func(Event)
	nextID uint64
}

func NewStore(log *zap.Logger, kv *kvstore.Store, nav Navigator) *Store {
	return &Store{
		log:  log.Named("session"),
		kv:   kv,
		nav:  nav,
		subs: make(map[uint64]func(Event)),
	}
}

// Token implements the api TokenSource.
func (s *Store) Token() string {
	token, _ := s.kv.Get(tokenKey)
	return token
}

// Current is read from the store on every call, never cached.
func (s *Store) Current() (Session, bool) {
	token, ok := s.kv.Get(tokenKey)
	if !ok || token == "" {
		return Session{}, false
	}
	raw, ok := s.kv.Get(userKey)
	if !ok {
		return Session{}, false
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("corrupt user record", zap.Error(err))
		return Session{}, false
	}
	return Session{Token: token, User: u}, true
}

// Begin persists a fresh session and publishes LoggedIn.
func (s *Store) Begin(tok model.Token) (Session, error) {
	if tok.AccessToken == "" {
		return Session{}, errors.New("empty access token")
	}
	sess := Session{Token: tok.AccessToken, User: User{Role: tok.Role, UserID: tok.UserID}}
	raw, err := json.Marshal(sess.User)
	if err != nil {
		return Session{}, errors.Wrap(err, "encode user")
	}

	s.mu.Lock()
	err = s.kv.Set(map[string]string{tokenKey: sess.Token, userKey: string(raw)})
	s.mu.Unlock()
	if err != nil {
		return Session{}, errors.Wrap(err, "store session")
	}
	s.log.Info("logged in", zap.Int("user_id", sess.User.UserID), zap.String("role", string(sess.User.Role)))
	s.publish(LoggedIn)
	return sess, nil
}

// Logout clears the session and goes home.
func (s *Store) Logout() error {
	existed, err := s.end()
	if err != nil {
		return err
	}
	if existed {
		s.log.Info("logged out")
		s.publish(LoggedOut)
	}
	s.navigate("/")
	return nil
}

// Expire is the 401 teardown. It may run from several failing calls at once;
// only the one that actually removed the session publishes and navigates.
func (s *Store) Expire() {
	existed, err := s.end()
	if err != nil {
		s.log.Error("teardown", zap.Error(err))
		return
	}
	if !existed {
		return
	}
	s.log.Warn("session expired")
	s.publish(Expired)
	s.navigate("/login")
}

func (s *Store) end() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, hasToken := s.kv.Get(tokenKey)
	_, hasUser := s.kv.Get(userKey)
	if !hasToken && !hasUser {
		return false, nil
	}
	if err := s.kv.Delete(tokenKey, userKey); err != nil {
		return false, errors.Wrap(err, "clear session")
	}
	return true, nil
}

func (s *Store) navigate(path string) {
	if s.nav != nil {
		s.nav.Navigate(path)
	}
}

// Subscribe registers fn for every session event until the returned func is called.
// fn runs synchronously on the goroutine of the transition.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			delete(s.subs, id)
		})
	}
}

func (s *Store) publish(e Event) {
	s.subsMu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

// Watch publishes Changed whenever another process rewrites the session file.
// It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	return s.kv.Watch(ctx, func() {
		s.log.Debug("session changed outside this process")
		s.publish(Changed)
	})
}
