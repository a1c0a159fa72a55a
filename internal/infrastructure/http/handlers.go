package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/aimcourse/ragdemo/internal/adapters/metrics"
	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

type slideData struct {
	Number int
	Active bool
	entities.Slide
}

type pageData struct {
	Input     string
	Samples   []string
	Panel     panelState
	Chart     chartData
	Slides    []slideData
	Indicator string
}

// session resolves the request's session, setting the cookie for a new one.
func (s *Server) session(c echo.Context) (*session, error) {
	id := ""
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		id = cookie.Value
	}
	sess, created, err := s.sessions.get(id)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	if created {
		c.SetCookie(&http.Cookie{
			Name:     SessionCookie,
			Value:    sess.id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess, nil
}

// withSession runs fn while holding the session lock. fn must not block on the resolver.
func (s *Server) withSession(c echo.Context, fn func(sess *session) error) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := s.sessions.syncContent(sess); err != nil {
		return err
	}
	return fn(sess)
}

// withPanel runs fn against the session panel behind earlier submissions of
// the same session. The session lock is released before fn, so page renders
// and slide navigation proceed while a query resolves.
func (s *Server) withPanel(c echo.Context, fn func(panel *usecases.QueryPanel) error) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	sess.submitMu.Lock()
	defer sess.submitMu.Unlock()

	sess.mu.Lock()
	err = s.sessions.syncContent(sess)
	panel := sess.panel
	sess.mu.Unlock()
	if err != nil {
		return err
	}
	return fn(panel)
}

// handleIndex renders the query panel, chart and slideshow.
func (s *Server) handleIndex(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		catalog := s.store.Snapshot()
		frame := sess.view.slideFrame()

		slides := make([]slideData, len(catalog.Slides))
		for i, slide := range catalog.Slides {
			slides[i] = slideData{Number: i + 1, Active: i+1 == frame.Active, Slide: slide}
		}

		return c.Render(http.StatusOK, "index.html", pageData{
			Input:     sess.panel.Input(),
			Samples:   sess.panel.Samples(),
			Panel:     sess.view.take(),
			Chart:     newChartData(catalog.Chart),
			Slides:    slides,
			Indicator: frame.Indicator,
		})
	})
}

// handleSubmit runs the session panel on the posted query.
// Validation and resolution failures reach the user as alerts on the next render.
func (s *Server) handleSubmit(c echo.Context) error {
	return s.withPanel(c, func(panel *usecases.QueryPanel) error {
		panel.SetInput(c.FormValue("query"))
		logSubmit(panel.SubmitQuery(c.Request().Context()))
		return c.Redirect(http.StatusSeeOther, "/")
	})
}

func (s *Server) handleSample(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sample index")
	}
	return s.withPanel(c, func(panel *usecases.QueryPanel) error {
		err := panel.SelectSample(c.Request().Context(), index)
		if errors.Is(err, usecases.ErrUnknownSample) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		logSubmit(err)
		return c.Redirect(http.StatusSeeOther, "/")
	})
}

func (s *Server) handleNextSlide(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		sess.slides.Next()
		return c.Redirect(http.StatusSeeOther, "/#slides")
	})
}

func (s *Server) handlePrevSlide(c echo.Context) error {
	return s.withSession(c, func(sess *session) error {
		sess.slides.Previous()
		return c.Redirect(http.StatusSeeOther, "/#slides")
	})
}

func (s *Server) handleGoToSlide(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid slide number")
	}
	return s.withSession(c, func(sess *session) error {
		sess.slides.GoTo(n)
		return c.Redirect(http.StatusSeeOther, "/#slides")
	})
}

func logSubmit(err error) {
	var resErr *usecases.ResolutionError
	if err == nil || errors.Is(err, usecases.ErrEmptyQuery) || errors.As(err, &resErr) {
		return
	}
	log.Printf("[WARN] Submit: %v", err)
}

// chartData is the dataset laid out as SVG bars.
type chartData struct {
	Title  string
	Label  string
	Width  int
	Height int
	Bars   []chartBar
	Ticks  []chartTick
}

type chartBar struct {
	Label  string
	Value  string
	Color  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	LabelX float64
	LabelY float64
}

type chartTick struct {
	Label string
	Y     float64
}

const (
	chartWidth  = 560
	chartHeight = 300
	chartTop    = 20
	chartBottom = 40
	chartLeft   = 40
)

func newChartData(ds entities.ChartDataset) chartData {
	plotHeight := float64(chartHeight - chartTop - chartBottom)
	plotWidth := float64(chartWidth - chartLeft)

	bars := metrics.Bars(ds)
	out := chartData{Title: ds.Title, Label: ds.Label, Width: chartWidth, Height: chartHeight}
	if len(bars) > 0 {
		slot := plotWidth / float64(len(bars))
		for i, bar := range bars {
			h := bar.Ratio * plotHeight
			x := float64(chartLeft) + float64(i)*slot + slot*0.15
			out.Bars = append(out.Bars, chartBar{
				Label:  bar.Label,
				Value:  strconv.FormatFloat(bar.Value, 'f', 2, 64),
				Color:  bar.Color,
				X:      x,
				Y:      float64(chartTop) + plotHeight - h,
				Width:  slot * 0.7,
				Height: h,
				LabelX: x + slot*0.35,
				LabelY: float64(chartHeight - chartBottom + 16),
			})
		}
	}

	max := ds.Max
	if max <= 0 {
		max = 1
	}
	for i := 0; i <= 4; i++ {
		frac := float64(i) / 4
		out.Ticks = append(out.Ticks, chartTick{
			Label: strconv.FormatFloat(max*frac, 'f', 2, 64),
			Y:     float64(chartTop) + plotHeight*(1-frac),
		})
	}
	return out
}
