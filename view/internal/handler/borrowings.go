package handler

import (
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// formOptionsLimit bounds the book and member pickers of the borrowing form.
const formOptionsLimit = 100

func statusParam(c echo.Context) (model.BorrowingStatus, error) {
	status := model.BorrowingStatus(c.QueryParam("status"))
	switch status {
	case "", model.StatusBorrowed, model.StatusReturned, model.StatusOverdue:
		return status, nil
	}
	return "", echo.NewHTTPError(http.StatusBadRequest, "invalid status")
}

type borrowingsView struct {
	listView[model.Borrowing]
	Books   []model.Book   `json:"available_books"`
	Members []model.Member `json:"members"`
}

// ListBorrowings
// @Summary paged borrowings with the options of the new borrowing form
// @Tags borrowings
// @Produce json
// @Param page query int false "page"
// @Param status query string false "borrowed, returned or overdue"
// @Success 200 {object} borrowingsView
// @Failure 400 {object} message
// @Router /borrowings [get]
func (h *Handler) ListBorrowings(c echo.Context) error {
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	view := borrowingsView{Books: []model.Book{}, Members: []model.Member{}}
	var outer error
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var ok bool
		view.listView, ok, outer = loadList(h, c, h.borrowings, string(status), "Failed to load borrowings")
		if !ok {
			return errListAborted
		}
		return nil
	})
	g.Go(func() error {
		page, err := h.librarySvc.ListBooks(ctx, model.Query{Limit: formOptionsLimit})
		if err != nil {
			h.log.Warn("load borrowing form books", zap.Error(err))
			return nil
		}
		for _, b := range page.Items {
			if b.AvailableCopies > 0 {
				view.Books = append(view.Books, b)
			}
		}
		return nil
	})
	g.Go(func() error {
		page, err := h.librarySvc.ListMembers(ctx, model.Query{Limit: formOptionsLimit})
		if err != nil {
			h.log.Warn("load borrowing form members", zap.Error(err))
			return nil
		}
		view.Members = append(view.Members, page.Items...)
		return nil
	})
	if err := g.Wait(); err != nil {
		return outer
	}
	return c.JSON(http.StatusOK, view)
}

// CreateBorrowing
// @Summary lend a book to a member
// @Tags borrowings
// @Accept json
// @Produce json
// @Param request body model.BorrowingRequest true "borrowing"
// @Success 201 {object} model.Borrowing
// @Failure 400 {object} message
// @Router /borrowings [post]
func (h *Handler) CreateBorrowing(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var req model.BorrowingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.DueDate.IsZero() {
		req.DueDate = model.DefaultDueDate(h.now())
	}
	b, err := h.librarySvc.CreateBorrowing(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to create borrowing")
	}
	h.publish(model.Activity{Kind: model.ActivityBorrow, UserID: sess.User.UserID, Role: sess.User.Role, BookID: req.BookID, BorrowingID: b.ID})
	h.borrowings.Load(c.Request().Context())
	return c.JSON(http.StatusCreated, b)
}

type returnForm struct {
	FineAmount float64 `json:"fine_amount"`
}

// ReturnBook
// @Summary return a borrowed book, optionally with a fine
// @Tags borrowings
// @Accept json
// @Produce json
// @Param id path int true "borrowing id"
// @Param request body returnForm false "fine"
// @Success 200 {object} model.Borrowing
// @Failure 400 {object} message
// @Router /borrowings/{id}/return [post]
func (h *Handler) ReturnBook(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form returnForm
	if err := bindOptional(c, &form); err != nil {
		return err
	}
	b, err := h.librarySvc.ReturnBook(c.Request().Context(), id, form.FineAmount)
	if err != nil {
		return h.fail(c, err, "Failed to return book")
	}
	h.publish(model.Activity{Kind: model.ActivityReturn, UserID: sess.User.UserID, Role: sess.User.Role, BookID: b.BookID, BorrowingID: id})
	if sess.IsAdmin() {
		h.borrowings.Load(c.Request().Context())
	} else {
		h.reloadBooks(c.Request().Context())
	}
	return c.JSON(http.StatusOK, b)
}

// DeleteBorrowing
// @Summary remove a borrowing record
// @Tags borrowings
// @Param id path int true "borrowing id"
// @Success 204
// @Failure 400 {object} message
// @Router /borrowings/{id} [delete]
func (h *Handler) DeleteBorrowing(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteBorrowing(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete borrowing")
	}
	h.borrowings.Load(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}
