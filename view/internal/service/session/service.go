package session

import (
	"context"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type Authenticator interface {
	Login(ctx context.Context, cred model.Credentials) (model.Token, error)
	Signup(ctx context.Context, req model.SignupRequest) (model.Token, error)
}

// Service runs the login and signup flows on top of a Store.
type Service struct {
	store *Store
	auth  Authenticator
}

func NewService(store *Store, auth Authenticator) *Service {
	return &Service{store: store, auth: auth}
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) Login(ctx context.Context, cred model.Credentials) (Session, error) {
	tok, err := s.auth.Login(ctx, cred)
	if err != nil {
		return Session{}, errors.Wrap(err, "login")
	}
	return s.store.Begin(tok)
}

func (s *Service) Signup(ctx context.Context, req model.SignupRequest) (Session, error) {
	tok, err := s.auth.Signup(ctx, req)
	if err != nil {
		return Session{}, errors.Wrap(err, "signup")
	}
	return s.store.Begin(tok)
}

func (s *Service) Current() (Session, bool) {
	return s.store.Current()
}

func (s *Service) Logout() error {
	return s.store.Logout()
}
