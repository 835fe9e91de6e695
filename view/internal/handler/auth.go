package handler

import (
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/labstack/echo/v4"
)

type loginResponse struct {
	Message  string     `json:"message"`
	Role     model.Role `json:"role"`
	UserID   int        `json:"user_id"`
	Redirect string     `json:"redirect"`
}

type navView struct {
	Authenticated bool          `json:"authenticated"`
	Role          model.Role    `json:"role,omitempty"`
	Greeting      string        `json:"greeting,omitempty"`
	Tabs          []session.Tab `json:"tabs"`
}

// LoginPage
// @Summary login view; already logged in users land on their dashboard
// @Tags auth
// @Success 200 {object} navView
// @Success 302
// @Router /login [get]
func (h *Handler) LoginPage(c echo.Context) error {
	if sess, ok := h.sessionSvc.Current(); ok {
		return c.Redirect(http.StatusFound, session.Landing(sess.User.Role))
	}
	return c.JSON(http.StatusOK, navView{Tabs: []session.Tab{}})
}

// Login
// @Summary login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.Credentials true "credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} message
// @Failure 401 {object} message
// @Router /login [post]
func (h *Handler) Login(c echo.Context) error {
	var cred model.Credentials
	if err := c.Bind(&cred); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.sessionSvc.Login(c.Request().Context(), cred)
	if err != nil {
		return h.authFail(err, "Login failed. Please check your credentials.")
	}
	h.publish(model.Activity{Kind: model.ActivityLogin, UserID: sess.User.UserID, Role: sess.User.Role})
	return c.JSON(http.StatusOK, loginResponse{
		Message:  "logged in",
		Role:     sess.User.Role,
		UserID:   sess.User.UserID,
		Redirect: session.Landing(sess.User.Role),
	})
}

// Signup
// @Summary create an account and log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "account"
// @Success 201 {object} loginResponse
// @Failure 400 {object} message
// @Router /signup [post]
func (h *Handler) Signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, err := h.sessionSvc.Signup(c.Request().Context(), req)
	if err != nil {
		return h.authFail(err, "Signup failed. Please try again.")
	}
	h.publish(model.Activity{Kind: model.ActivityLogin, UserID: sess.User.UserID, Role: sess.User.Role})
	return c.JSON(http.StatusCreated, loginResponse{
		Message:  "account created",
		Role:     sess.User.Role,
		UserID:   sess.User.UserID,
		Redirect: session.Landing(sess.User.Role),
	})
}

// a failed login is reported, not redirected
func (h *Handler) authFail(err error, fallback string) error {
	code := http.StatusBadGateway
	if status, ok := clientStatus(err); ok {
		code = status
	} else if isValidation(err) {
		code = http.StatusBadRequest
	}
	return echo.NewHTTPError(code, errs.Message(err, fallback))
}

// Logout
// @Summary logout
// @Tags auth
// @Success 303
// @Router /logout [post]
func (h *Handler) Logout(c echo.Context) error {
	sess, had := h.sessionSvc.Current()
	if err := h.sessionSvc.Logout(); err != nil {
		return h.fail(c, err, "Failed to log out")
	}
	h.ResetViews()
	if had {
		h.publish(model.Activity{Kind: model.ActivityLogout, UserID: sess.User.UserID, Role: sess.User.Role})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Nav
// @Summary navigation tabs and greeting for the current session
// @Tags auth
// @Produce json
// @Success 200 {object} navView
// @Router /nav [get]
func (h *Handler) Nav(c echo.Context) error {
	sess, ok := h.sessionSvc.Current()
	view := navView{Authenticated: ok, Tabs: session.Tabs(sess, ok)}
	if ok {
		view.Role = sess.User.Role
		view.Greeting = h.greeter.Name()
	}
	return c.JSON(http.StatusOK, view)
}
