package handler

import (
	"net/http"
	"sync"

	"github.com/Astemirdum/library-view/view/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	)

const homeTestimonials = 6

type homeView struct {
	Stats        *model.LibraryStats `json:"stats,omitempty"`
	Testimonials []model.Testimonial `json:"testimonials"`
}

// Home
// @Summary public landing page: library stats and reader testimonials
// @Tags home
// @Produce json
// @Success 200 {object} homeView
// @Router / [get]
func (h *Handler) Home(c echo.Context) error {
	view := homeView{Testimonials: []model.Testimonial{}}
	ctx := c.Request().Context()
	// the landing page renders with whatever loaded
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, err := h.librarySvc.Stats(ctx)
		if err != nil {
			h.log.Warn("load stats", zap.Error(err))
			return
		}
		view.Stats = &stats
	}()
	go func() {
		defer wg.Done()
		ts, err := h.librarySvc.ListTestimonials(ctx, model.Query{Limit: homeTestimonials})
		if err != nil {
			h.log.Warn("load testimonials", zap.Error(err))
			return
		}
		view.Testimonials = append(view.Testimonials, ts...)
	}()
	wg.Wait()
	return c.JSON(http.StatusOK, view)
}

// Subscribe
// @Summary newsletter subscription
// @Tags home
// @Accept json
// @Produce json
// @Param request body model.Subscription true "email"
// @Success 201 {object} model.Subscription
// @Failure 400 {object} message
// @Router /subscriptions [post]
func (h *Handler) Subscribe(c echo.Context) error {
	var req model.Subscription
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please enter a valid email address")
	}
	sub, err := h.librarySvc.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return h.fail(c, err, "Failed to subscribe")
	}
	return c.JSON(http.StatusCreated, sub)
}

// CreateTestimonial
// @Summary leave a testimonial
// @Tags home
// @Accept json
// @Produce json
// @Param request body model.TestimonialRequest true "testimonial"
// @Success 201 {object} model.Testimonial
// @Failure 400 {object} message
// @Router /testimonials [post]
func (h *Handler) CreateTestimonial(c echo.Context) error {
	var req model.TestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.librarySvc.CreateTestimonial(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to submit testimonial")
	}
	return c.JSON(http.StatusCreated, t)
}
