package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) ListBorrowings(ctx context.Context, status model.BorrowingStatus, q model.Query) (model.Page[model.Borrowing], error) {
	query := url.Values{}
	if q.Limit > 0 {
		query = listQuery(q)
	}
	if status != "" {
		query.Set("status_filter", string(status))
	}
	var page model.Page[model.Borrowing]
	if err := c.get(ctx, "/borrowings", query, &page); err != nil {
		return model.Page[model.Borrowing]{}, errors.Wrap(err, "ListBorrowings")
	}
	return page, nil
}

func (c *Client) GetBorrowing(ctx context.Context, id int) (model.Borrowing, error) {
	var b model.Borrowing
	if err := c.get(ctx, fmt.Sprintf("/borrowings/%d", id), nil, &b); err != nil {
		return model.Borrowing{}, errors.Wrap(err, "GetBorrowing")
	}
	return b, nil
}

func (c *Client) CreateBorrowing(ctx context.Context, req model.BorrowingRequest) (model.Borrowing, error) {
	if err := validateRequest(req); err != nil {
		return model.Borrowing{}, err
	}
	if req.DueDate.IsZero() {
		return model.Borrowing{}, errs.Invalid("DueDate", "is required")
	}
	var b model.Borrowing
	if err := c.do(ctx, http.MethodPost, "/borrowings", nil, req, &b); err != nil {
		return model.Borrowing{}, errors.Wrap(err, "CreateBorrowing")
	}
	return b, nil
}

// ReturnBook sends fine_amount only when positive.
func (c *Client) ReturnBook(ctx context.Context, id int, fine float64) (model.Borrowing, error) {
	if fine < 0 {
		return model.Borrowing{}, errs.Invalid("FineAmount", "must be >= 0")
	}
	q := url.Values{}
	if fine > 0 {
		q.Set("fine_amount", strconv.FormatFloat(fine, 'f', -1, 64))
	}
	var b model.Borrowing
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/borrowings/%d/return", id), q, nil, &b); err != nil {
		return model.Borrowing{}, errors.Wrap(err, "ReturnBook")
	}
	return b, nil
}

func (c *Client) UpdateBorrowing(ctx context.Context, id int, upd model.BorrowingUpdate) (model.Borrowing, error) {
	if err := validateRequest(upd); err != nil {
		return model.Borrowing{}, err
	}
	var b model.Borrowing
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/borrowings/%d", id), nil, upd, &b); err != nil {
		return model.Borrowing{}, errors.Wrap(err, "UpdateBorrowing")
	}
	return b, nil
}

func (c *Client) DeleteBorrowing(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/borrowings/%d", id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "DeleteBorrowing")
	}
	return nil
}
