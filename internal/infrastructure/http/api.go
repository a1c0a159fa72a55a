package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

type errorResponse struct {
	Error string `json:"error"`
}

type queryRequest struct {
	Query string `json:"query"`
}

// ragRequest is the action body accepted by /api/rag.
type ragRequest struct {
	Action string `json:"action"`
	Query  string `json:"query"`
	K      int    `json:"k"`
}

type samplesResponse struct {
	Samples []string `json:"samples"`
}

// handleQuery resolves a JSON query with the configured resolver.
func (s *Server) handleQuery(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	return s.resolveJSON(c, req.Query, 0)
}

// handleRAG serves the action-style endpoint used by the production page.
func (s *Server) handleRAG(c echo.Context) error {
	var req ragRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	switch req.Action {
	case "", "query":
		return s.resolveJSON(c, req.Query, req.K)
	case "get_sample_queries":
		return c.JSON(http.StatusOK, samplesResponse{Samples: s.store.Snapshot().SampleQueries})
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid action"})
	}
}

// resolveJSON runs a one-shot panel so the API shares validation and failure handling with the page.
// k > 0 truncates the sources.
func (s *Server) resolveJSON(c echo.Context, query string, k int) error {
	view := &captureView{}
	panel := usecases.NewQueryPanel(s.resolver, view, view, nil)
	panel.SetInput(query)

	err := panel.SubmitQuery(c.Request().Context())
	if errors.Is(err, usecases.ErrEmptyQuery) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "query required"})
	}
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}

	result := *panel.Result()
	if k > 0 && len(result.Sources) > k {
		result.Sources = append([]entities.SourceCitation(nil), result.Sources[:k]...)
	}
	return c.JSON(http.StatusOK, result)
}

// handleHealth returns server health status.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
