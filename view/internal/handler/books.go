package handler

import (
	"context"
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/paging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type bookRow struct {
	model.Book
	BorrowedByMe bool        `json:"borrowed_by_me"`
	BorrowingID  int         `json:"borrowing_id,omitempty"`
	MyDueDate    *model.Date `json:"my_due_date,omitempty"`
}

type booksView struct {
	Books      []bookRow    `json:"items"`
	SearchTerm string       `json:"search_term,omitempty"`
	Pagination paging.Pager `json:"pagination"`
	Loading    bool         `json:"loading"`
	Error      string       `json:"error,omitempty"`
}

// ListBooks
// @Summary paged book catalogue; members see which books they hold
// @Tags books
// @Produce json
// @Param page query int false "page"
// @Param q query string false "search term"
// @Success 200 {object} booksView
// @Success 302
// @Router /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	var (
		list  listView[model.Book]
		ok    bool
		mine  []model.Borrowing
		outer error
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		list, ok, outer = loadList(h, c, h.books, c.QueryParam("q"), "Failed to load books")
		if !ok {
			return errListAborted
		}
		return nil
	})
	if !sess.IsAdmin() {
		g.Go(func() error {
			bs, err := h.librarySvc.UserDashboard(ctx)
			if err != nil {
				h.log.Warn("load own borrowings", zap.Error(err))
				return nil
			}
			mine = bs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outer
	}

	rows := make([]bookRow, 0, len(list.Items))
	for _, b := range list.Items {
		row := bookRow{Book: b}
		if loan, held := model.ActiveLoanOf(b.ID, mine); held {
			due := loan.DueDate
			row.BorrowedByMe, row.BorrowingID, row.MyDueDate = true, loan.ID, &due
		}
		rows = append(rows, row)
	}
	return c.JSON(http.StatusOK, booksView{
		Books:      rows,
		SearchTerm: list.SearchTerm,
		Pagination: list.Pager,
		Loading:    list.Loading,
		Error:      list.Error,
	})
}

// CreateBook
// @Summary add a book
// @Tags books
// @Accept json
// @Produce json
// @Param request body model.BookRequest true "book"
// @Success 201 {object} model.Book
// @Failure 400 {object} message
// @Router /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	req := model.NewBookRequest()
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to create book")
	}
	h.reloadBooks(c.Request().Context())
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook
// @Summary edit a book
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "book id"
// @Param request body model.BookRequest true "book"
// @Success 200 {object} model.Book
// @Failure 400 {object} message
// @Router /books/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	req := model.NewBookRequest()
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, err, "Failed to update book")
	}
	h.reloadBooks(c.Request().Context())
	return c.JSON(http.StatusOK, book)
}

// DeleteBook
// @Summary remove a book
// @Tags books
// @Param id path int true "book id"
// @Success 204
// @Failure 400 {object} message
// @Router /books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteBook(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete book")
	}
	h.reloadBooks(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

type borrowForm struct {
	DueDate model.Date `json:"due_date"`
}

// BorrowBook
// @Summary borrow a book for the logged in member
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "book id"
// @Param request body borrowForm false "due date, 30 days from today when omitted"
// @Success 201 {object} model.Borrowing
// @Failure 400 {object} message
// @Router /books/{id}/borrow [post]
func (h *Handler) BorrowBook(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var form borrowForm
	if err := bindOptional(c, &form); err != nil {
		return err
	}
	if form.DueDate.IsZero() {
		form.DueDate = model.DefaultDueDate(h.now())
	}
	b, err := h.librarySvc.CreateBorrowing(c.Request().Context(), model.BorrowingRequest{BookID: id, DueDate: form.DueDate})
	if err != nil {
		return h.fail(c, err, "Failed to borrow book")
	}
	h.publish(model.Activity{Kind: model.ActivityBorrow, UserID: sess.User.UserID, Role: sess.User.Role, BookID: id, BorrowingID: b.ID})
	h.reloadBooks(c.Request().Context())
	return c.JSON(http.StatusCreated, b)
}

// mutations reload the list under the current page and term
func (h *Handler) reloadBooks(ctx context.Context) {
	h.books.Load(ctx)
}
