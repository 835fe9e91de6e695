package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) ListMembers(ctx context.Context, q model.Query) (model.Page[model.Member], error) {
	var page model.Page[model.Member]
	if err := c.get(ctx, "/members", listQuery(q), &page); err != nil {
		return model.Page[model.Member]{}, errors.Wrap(err, "ListMembers")
	}
	return page, nil
}

func (c *Client) GetMember(ctx context.Context, id int) (model.Member, error) {
	var member model.Member
	if err := c.get(ctx, fmt.Sprintf("/members/%d", id), nil, &member); err != nil {
		return model.Member{}, errors.Wrap(err, "GetMember")
	}
	return member, nil
}

func (c *Client) CreateMember(ctx context.Context, req model.MemberRequest) (model.Member, error) {
	if err := validateMember(req, req.CreateUserAccount); err != nil {
		return model.Member{}, err
	}
	var member model.Member
	if err := c.do(ctx, http.MethodPost, "/members", nil, req, &member); err != nil {
		return model.Member{}, errors.Wrap(err, "CreateMember")
	}
	return member, nil
}

func (c *Client) UpdateMember(ctx context.Context, id int, req model.MemberRequest) (model.Member, error) {
	if err := validateMember(req, false); err != nil {
		return model.Member{}, err
	}
	var member model.Member
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/members/%d", id), nil, req, &member); err != nil {
		return model.Member{}, errors.Wrap(err, "UpdateMember")
	}
	return member, nil
}

func (c *Client) DeleteMember(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/members/%d", id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "DeleteMember")
	}
	return nil
}

// GetMemberUser returns the login account linked to a member.
func (c *Client) GetMemberUser(ctx context.Context, id int) (model.User, error) {
	var user model.User
	if err := c.get(ctx, fmt.Sprintf("/members/%d/user", id), nil, &user); err != nil {
		return model.User{}, errors.Wrap(err, "GetMemberUser")
	}
	return user, nil
}

func (c *Client) ListMemberBorrowings(ctx context.Context, id int, status model.BorrowingStatus) ([]model.Borrowing, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status_filter", string(status))
	}
	var page model.Page[model.Borrowing]
	if err := c.get(ctx, fmt.Sprintf("/members/%d/borrowings", id), q, &page); err != nil {
		return nil, errors.Wrap(err, "ListMemberBorrowings")
	}
	return page.Items, nil
}

func validateMember(req model.MemberRequest, withAccount bool) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if withAccount && (req.Password == nil || *req.Password == "") {
		return errs.Invalid("Password", "is required to create a login account")
	}
	return nil
}
