package api

import (
	"context"
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) Login(ctx context.Context, cred model.Credentials) (model.Token, error) {
	if err := validateRequest(cred); err != nil {
		return model.Token{}, err
	}
	var token model.Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, cred, &token); err != nil {
		return model.Token{}, errors.Wrap(err, "Login")
	}
	return token, nil
}

func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.Token, error) {
	if err := validateRequest(req); err != nil {
		return model.Token{}, err
	}
	var token model.Token
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &token); err != nil {
		return model.Token{}, errors.Wrap(err, "Signup")
	}
	return token, nil
}

func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return model.User{}, errors.Wrap(err, "Me")
	}
	return user, nil
}

// GetProfile always hits the network; callers go through the profile cache.
func (c *Client) GetProfile(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, profilePath, nil, &profile); err != nil {
		return model.Profile{}, errors.Wrap(err, "GetProfile")
	}
	return profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (model.Profile, error) {
	if err := validateRequest(upd); err != nil {
		return model.Profile{}, err
	}
	var profile model.Profile
	if err := c.do(ctx, http.MethodPut, profilePath, nil, upd, &profile); err != nil {
		return model.Profile{}, errors.Wrap(err, "UpdateProfile")
	}
	return profile, nil
}
