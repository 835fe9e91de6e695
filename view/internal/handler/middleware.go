package handler

import (
	"net/http"

	"github.com/Astemirdum/library-view/view/internal/service/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const sessionKey = "session"

// requireSession lets a request through only when the store holds both a
// token and a user record. It reads the store on every request.
func (h *Handler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := h.sessionSvc.Current()
		if !ok {
			return c.Redirect(http.StatusFound, "/login")
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

// requireAdmin sends members to their own dashboard.
func (h *Handler) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := currentSession(c)
		if err != nil {
			return err
		}
		if !sess.IsAdmin() {
			return c.Redirect(http.StatusFound, session.Landing(sess.User.Role))
		}
		return next(c)
	}
}

func currentSession(c echo.Context) (session.Session, error) {
	sess, ok := c.Get(sessionKey).(session.Session)
	if !ok {
		return session.Session{}, errors.New("invalid sessionKey")
	}
	return sess, nil
}

// LogNavigator records navigation requested outside of a request, e.g. by
// a teardown; the view server redirects per request instead.
type LogNavigator struct {
	log *zap.Logger
}

func NewLogNavigator(log *zap.Logger) *LogNavigator {
	return &LogNavigator{log: log.Named("nav")}
}

func (n *LogNavigator) Navigate(path string) {
	n.log.Info("navigate", zap.String("to", path))
}
