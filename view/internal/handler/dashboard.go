package handler

import (
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/labstack/echo/v4"
)

// Dashboard
// @Summary admin dashboard: library stats and the newest books
// @Tags dashboard
// @Produce json
// @Success 200 {object} model.Dashboard
// @Success 302
// @Router /dashboard [get]
func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.librarySvc.Dashboard(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to load dashboard")
	}
	return c.JSON(http.StatusOK, d)
}

type userDashboardView struct {
	Loans      []model.Loan `json:"loans"`
	PendingDue []model.Loan `json:"pending_due"`
}

// UserDashboard
// @Summary member dashboard: current loans and those due soon
// @Tags dashboard
// @Produce json
// @Success 200 {object} userDashboardView
// @Success 302
// @Router /user/dashboard [get]
func (h *Handler) UserDashboard(c echo.Context) error {
	bs, err := h.librarySvc.UserDashboard(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to load your borrowings")
	}
	loans := model.NewLoans(bs, h.now())
	return c.JSON(http.StatusOK, userDashboardView{
		Loans:      loans,
		PendingDue: model.PendingDue(loans),
	})
}
