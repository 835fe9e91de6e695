package api

import (
	"context"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var d model.Dashboard
	if err := c.get(ctx, "/dashboard", nil, &d); err != nil {
		return model.Dashboard{}, errors.Wrap(err, "Dashboard")
	}
	if d.NewBooks == nil {
		d.NewBooks = []model.Book{}
	}
	return d, nil
}

// UserDashboard returns the active borrowings of the current member.
func (c *Client) UserDashboard(ctx context.Context) ([]model.Borrowing, error) {
	var page model.Page[model.Borrowing]
	if err := c.get(ctx, "/user/dashboard", nil, &page); err != nil {
		return nil, errors.Wrap(err, "UserDashboard")
	}
	return page.Items, nil
}

func (c *Client) Stats(ctx context.Context) (model.LibraryStats, error) {
	var s model.LibraryStats
	if err := c.get(ctx, "/stats", nil, &s); err != nil {
		return model.LibraryStats{}, errors.Wrap(err, "Stats")
	}
	return s, nil
}
