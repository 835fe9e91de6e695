package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Astemirdum/library-view/pkg/circuit_breaker"
	mw "github.com/Astemirdum/library-view/pkg/middleware"
	"github.com/Astemirdum/library-view/pkg/validate"
	"github.com/Astemirdum/library-view/view/internal/errs"
	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/Astemirdum/library-view/view/internal/service/paging"
	_ "github.com/Astemirdum/library-view/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	librarySvc LibraryService
	profileSvc ProfileService
	sessionSvc SessionService
	greeter    Greeter
	enqueuer   Enqueuer
	log        *zap.Logger
	now        func() time.Time

	books      *paging.Controller[model.Book]
	members    *paging.Controller[model.Member]
	borrowings *paging.Controller[model.Borrowing]
}

func New(
	log *zap.Logger,
	librarySvc LibraryService,
	profileSvc ProfileService,
	sessionSvc SessionService,
	greeter Greeter,
	enqueuer Enqueuer,
	itemsPerPage int,
) *Handler {
	h := &Handler{
		librarySvc: librarySvc,
		profileSvc: profileSvc,
		sessionSvc: sessionSvc,
		greeter:    greeter,
		enqueuer:   enqueuer,
		log:        log.Named("handler"),
		now:        time.Now,
	}
	h.books = paging.NewController(librarySvc.ListBooks, itemsPerPage)
	h.members = paging.NewController(h.listOtherMembers, itemsPerPage)
	// the borrowings controller uses the status filter as its search term
	h.borrowings = paging.NewController(func(ctx context.Context, q model.Query) (model.Page[model.Borrowing], error) {
		return librarySvc.ListBorrowings(ctx, model.BorrowingStatus(q.Search), q)
	}, itemsPerPage)
	return h
}

// ResetViews drops list state kept for the previous session.
func (h *Handler) ResetViews() {
	h.books.Reset()
	h.members.Reset()
	h.borrowings.Reset()
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		viewRPS = 100
	)
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Validator = validate.NewCustomValidator()

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	views := e.Group("",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(viewRPS),
	)
	views.GET("/", h.Home)
	views.GET("/nav", h.Nav)
	views.GET("/login", h.LoginPage)
	views.POST("/login", h.Login)
	views.POST("/signup", h.Signup)
	views.POST("/logout", h.Logout)
	views.POST("/subscriptions", h.Subscribe)
	views.POST("/testimonials", h.CreateTestimonial)

	protected := views.Group("", h.requireSession)
	protected.GET("/user/dashboard", h.UserDashboard)
	protected.GET("/books", h.ListBooks)
	protected.POST("/books/:id/borrow", h.BorrowBook)
	protected.POST("/borrowings/:id/return", h.ReturnBook)
	protected.GET("/profile", h.GetProfile)
	protected.PUT("/profile", h.UpdateProfile)

	admin := protected.Group("", h.requireAdmin)
	admin.GET("/dashboard", h.Dashboard)
	admin.POST("/books", h.CreateBook)
	admin.PUT("/books/:id", h.UpdateBook)
	admin.DELETE("/books/:id", h.DeleteBook)
	admin.GET("/members", h.ListMembers)
	admin.POST("/members", h.CreateMember)
	admin.PUT("/members/:id", h.UpdateMember)
	admin.DELETE("/members/:id", h.DeleteMember)
	admin.GET("/members/:id/borrowings", h.MemberBorrowings)
	admin.GET("/borrowings", h.ListBorrowings)
	admin.POST("/borrowings", h.CreateBorrowing)
	admin.DELETE("/borrowings/:id", h.DeleteBorrowing)

	return e
}

// Health
// @Summary health check
// @Tags manage
// @Success 200 {string} string "OK"
// @Router /manage/health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

type message struct {
	Message string `json:"message"`
}

// fail turns a mutation failure into the response of the view: a 401
// sends the user to the login view, everything else keeps the backend detail.
func (h *Handler) fail(c echo.Context, err error, fallback string) error {
	if errors.Is(err, errs.ErrUnauthorized) {
		return c.Redirect(http.StatusFound, "/login")
	}
	code := http.StatusBadGateway
	if status, ok := clientStatus(err); ok {
		code = status
	} else if isValidation(err) {
		code = http.StatusBadRequest
	} else if errors.Is(err, circuit_breaker.ErrOpenCB) {
		code = http.StatusServiceUnavailable
	}
	h.log.Warn(fallback, zap.Error(err), zap.Int("code", code))
	return echo.NewHTTPError(code, errs.Message(err, fallback))
}

// listError is the display-only error of a list view; a 401 still redirects.
func (h *Handler) listError(err error, fallback string) (string, bool) {
	if err == nil {
		return "", false
	}
	if errors.Is(err, errs.ErrUnauthorized) {
		return "", true
	}
	h.log.Warn(fallback, zap.Error(err))
	return errs.Message(err, fallback), false
}

func clientStatus(err error) (int, bool) {
	var apiErr *errs.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status, true
	}
	return 0, false
}

func isValidation(err error) bool {
	return errors.Is(err, errs.ErrValidation)
}

func (h *Handler) publish(a model.Activity) {
	a.At = h.now()
	if err := h.enqueuer.Enqueue(a); err != nil {
		h.log.Error("enqueue activity", zap.String("kind", string(a.Kind)), zap.Error(err))
	}
}

func pathID(c echo.Context) (int, error) {
	var id int
	if err := echo.PathParamsBinder(c).MustInt("id", &id).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
