package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/pkg/errors"
)

func (c *Client) ListBooks(ctx context.Context, q model.Query) (model.Page[model.Book], error) {
	var page model.Page[model.Book]
	if err := c.get(ctx, "/books", listQuery(q), &page); err != nil {
		return model.Page[model.Book]{}, errors.Wrap(err, "ListBooks")
	}
	return page, nil
}

func (c *Client) GetBook(ctx context.Context, id int) (model.Book, error) {
	var book model.Book
	if err := c.get(ctx, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return model.Book{}, errors.Wrap(err, "GetBook")
	}
	return book, nil
}

func (c *Client) CreateBook(ctx context.Context, req model.BookRequest) (model.Book, error) {
	if err := validateRequest(req); err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := c.do(ctx, http.MethodPost, "/books", nil, req, &book); err != nil {
		return model.Book{}, errors.Wrap(err, "CreateBook")
	}
	return book, nil
}

func (c *Client) UpdateBook(ctx context.Context, id int, req model.BookRequest) (model.Book, error) {
	if err := validateRequest(req); err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), nil, req, &book); err != nil {
		return model.Book{}, errors.Wrap(err, "UpdateBook")
	}
	return book, nil
}

func (c *Client) DeleteBook(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil, nil); err != nil {
		return errors.Wrap(err, "DeleteBook")
	}
	return nil
}
