package handler

import (
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/service/paging"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// errListAborted stops the sibling loads of a list view that already answered.
var errListAborted = errors.New("list view aborted")

type listView[T any] struct {
	paging.State[T]
	Error string `json:"error,omitempty"`
}

// loadList applies the page and search query params to ctrl and loads it.
// A changed term wins over the page param. A load dropped as a duplicate
// answers with the current state.
func loadList[T any](h *Handler, c echo.Context, ctrl *paging.Controller[T], term, fallback string) (listView[T], bool, error) {
	page := 1
	if err := echo.QueryParamsBinder(c).Int("page", &page).BindError(); err != nil {
		return listView[T]{}, false, echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if !ctrl.SetSearch(term) && c.QueryParam("page") != "" {
		ctrl.SetPage(page)
	}
	state, _ := ctrl.Load(c.Request().Context())
	msg, redirect := h.listError(state.Err, fallback)
	if redirect {
		return listView[T]{}, false, c.Redirect(http.StatusFound, "/login")
	}
	return listView[T]{State: state, Error: msg}, true, nil
}

// bindOptional binds an optional request body; a request without a
// Content-Type keeps the zero form.
func bindOptional(c echo.Context, form any) error {
	if c.Request().Header.Get(echo.HeaderContentType) == "" {
		return nil
	}
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
