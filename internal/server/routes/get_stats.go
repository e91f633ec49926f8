package routes

import (
	"net/http"

	"github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/pkg/store"

	"github.com/labstack/echo/v4"
)

// GetSessionStatsHandler returns node, edge, and type counts for a session.
func GetSessionStatsHandler(c echo.Context) error {
	type statsResponse struct {
		Message string             `json:"message"`
		Stats   *store.Stats       `json:"stats,omitempty"`
		Dropped []store.Diagnostic `json:"dropped_relationships,omitempty"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App

	s, ok := app.Sessions.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, statsResponse{
			Message: "Session not found",
		})
	}

	stats := s.Handle.Stats()
	return c.JSON(http.StatusOK, statsResponse{
		Message: "Stats retrieved successfully",
		Stats:   &stats,
		Dropped: s.Handle.Diagnostics(),
	})
}
