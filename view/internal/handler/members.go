package handler

import (
	"context"
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// listOtherMembers hides the member record of the logged in admin.
func (h *Handler) listOtherMembers(ctx context.Context, q model.Query) (model.Page[model.Member], error) {
	var (
		me   model.User
		page model.Page[model.Member]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		me, err = h.librarySvc.Me(gctx)
		return err
	})
	g.Go(func() (err error) {
		page, err = h.librarySvc.ListMembers(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Page[model.Member]{}, err
	}
	if me.MemberID == nil {
		return page, nil
	}
	others := make([]model.Member, 0, len(page.Items))
	for _, m := range page.Items {
		if m.ID != *me.MemberID {
			others = append(others, m)
		}
	}
	if removed := len(page.Items) - len(others); removed > 0 {
		page.Total = max(0, page.Total-removed)
	}
	page.Items = others
	return page, nil
}

// ListMembers
// @Summary paged member list
// @Tags members
// @Produce json
// @Param page query int false "page"
// @Param q query string false "search term"
// @Success 200 {object} listView[model.Member]
// @Success 302
// @Router /members [get]
func (h *Handler) ListMembers(c echo.Context) error {
	list, ok, err := loadList(h, c, h.members, c.QueryParam("q"), "Failed to load members")
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// CreateMember
// @Summary add a member, optionally with a login
// @Tags members
// @Accept json
// @Produce json
// @Param request body model.MemberRequest true "member"
// @Success 201 {object} model.Member
// @Failure 400 {object} message
// @Router /members [post]
func (h *Handler) CreateMember(c echo.Context) error {
	var req model.MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.librarySvc.CreateMember(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to create member")
	}
	h.members.Load(c.Request().Context())
	return c.JSON(http.StatusCreated, m)
}

// UpdateMember
// @Summary edit a member and its login
// @Tags members
// @Accept json
// @Produce json
// @Param id path int true "member id"
// @Param request body model.MemberRequest true "member"
// @Success 200 {object} model.Member
// @Failure 400 {object} message
// @Router /members/{id} [put]
func (h *Handler) UpdateMember(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.librarySvc.UpdateMember(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, err, "Failed to update member")
	}
	h.members.Load(c.Request().Context())
	return c.JSON(http.StatusOK, m)
}

// DeleteMember
// @Summary remove a member
// @Tags members
// @Param id path int true "member id"
// @Success 204
// @Failure 400 {object} message
// @Router /members/{id} [delete]
func (h *Handler) DeleteMember(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteMember(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete member")
	}
	h.members.Load(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

type memberBorrowingsView struct {
	Account *model.User  `json:"account,omitempty"`
	Loans   []model.Loan `json:"loans"`
}

// MemberBorrowings
// @Summary borrowings and login account of one member
// @Tags members
// @Produce json
// @Param id path int true "member id"
// @Param status query string false "borrowed, returned or overdue"
// @Success 200 {object} memberBorrowingsView
// @Failure 400 {object} message
// @Router /members/{id}/borrowings [get]
func (h *Handler) MemberBorrowings(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	status, err := statusParam(c)
	if err != nil {
		return err
	}
	var (
		account *model.User
		items   []model.Borrowing
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		items, err = h.librarySvc.ListMemberBorrowings(ctx, id, status)
		return err
	})
	g.Go(func() error {
		// members without a login answer 404 here
		u, err := h.librarySvc.GetMemberUser(ctx, id)
		if err == nil {
			account = &u
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return h.fail(c, err, "Failed to load borrowings")
	}
	return c.JSON(http.StatusOK, memberBorrowingsView{
		Account: account,
		Loans:   model.NewLoans(items, h.now()),
	})
}
