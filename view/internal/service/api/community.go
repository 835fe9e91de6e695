package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) ListTestimonials(ctx context.Context, q model.Query) ([]model.Testimonial, error) {
	var page model.Page[model.Testimonial]
	if err := c.get(ctx, "/testimonials", listQuery(q), &page); err != nil {
		return nil, errors.Wrap(err, "ListTestimonials")
	}
	return page.Items, nil
}

func (c *Client) GetTestimonial(ctx context.Context, id int) (model.Testimonial, error) {
	var t model.Testimonial
	if err := c.get(ctx, fmt.Sprintf("/testimonials/%d", id), nil, &t); err != nil {
		return model.Testimonial{}, errors.Wrap(err, "GetTestimonial")
	}
	return t, nil
}

func (c *Client) CreateTestimonial(ctx context.Context, req model.TestimonialRequest) (model.Testimonial, error) {
	if err := validateRequest(req); err != nil {
		return model.Testimonial{}, err
	}
	var t model.Testimonial
	if err := c.do(ctx, http.MethodPost, "/testimonials", nil, req, &t); err != nil {
		return model.Testimonial{}, errors.Wrap(err, "CreateTestimonial")
	}
	return t, nil
}

func (c *Client) UpdateTestimonial(ctx context.Context, id int, req model.TestimonialRequest) (model.Testimonial, error) {
	if err := validateRequest(req); err != nil {
		return model.Testimonial{}, err
	}
	var t model.Testimonial
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/testimonials/%d", id), nil, req, &t); err != nil {
		return model.Testimonial{}, errors.Wrap(err, "UpdateTestimonial")
	}
	return t, nil
}

func (c *Client) DeleteTestimonial(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/testimonials/%d", id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "DeleteTestimonial")
	}
	return nil
}

func (c *Client) Subscribe(ctx context.Context, email string) (model.Subscription, error) {
	req := model.Subscription{Email: email}
	if err := validateRequest(req); err != nil {
		return model.Subscription{}, err
	}
	var sub model.Subscription
	if err := c.do(ctx, http.MethodPost, "/subscriptions", nil, req, &sub); err != nil {
		return model.Subscription{}, errors.Wrap(err, "Subscribe")
	}
	return sub, nil
}

func (c *Client) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	var page model.Page[model.Subscription]
	if err := c.get(ctx, "/subscriptions", nil, &page); err != nil {
		return nil, errors.Wrap(err, "ListSubscriptions")
	}
	return page.Items, nil
}
