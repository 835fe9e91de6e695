package handler

import (
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/profile"
	"github.com/labstack/echo/v4"
)

type profileView struct {
	Profile model.Profile `json:"profile"`
	Form    profile.Form  `json:"form"`
}

// GetProfile
// @Summary own profile and the prefilled edit form
// @Tags profile
// @Produce json
// @Success 200 {object} profileView
// @Success 302
// @Router /profile [get]
func (h *Handler) GetProfile(c echo.Context) error {
	p, err := h.profileSvc.Get(c.Request().Context(), false)
	if err != nil {
		return h.fail(c, err, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, profileView{Profile: p, Form: profile.FormOf(p)})
}

// UpdateProfile
// @Summary edit own profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body profile.Form true "profile form"
// @Success 200 {object} profileView
// @Failure 400 {object} message
// @Router /profile [put]
func (h *Handler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	current, err := h.profileSvc.Get(ctx, false)
	if err != nil {
		return h.fail(c, err, "Failed to load profile")
	}
	var form profile.Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	upd, err := form.Update(current.Member != nil)
	if err != nil {
		return h.fail(c, err, "Failed to update profile")
	}
	if _, err := h.profileSvc.Update(ctx, upd); err != nil {
		return h.fail(c, err, "Failed to update profile")
	}
	p, err := h.profileSvc.Get(ctx, true)
	if err != nil {
		return h.fail(c, err, "Failed to load profile")
	}
	return c.JSON(http.StatusOK, profileView{Profile: p, Form: profile.FormOf(p)})
}
