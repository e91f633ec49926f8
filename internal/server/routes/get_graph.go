package routes

import (
	"net/http"

	"github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/pkg/logger"
	"github.com/atlasgraph/atlas/pkg/viz"

	"github.com/labstack/echo/v4"
)

// GetSessionGraphHandler renders the session's graph as an interactive
// HTML page.
func GetSessionGraphHandler(c echo.Context) error {
	type graphErrorResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App

	s, ok := app.Sessions.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, graphErrorResponse{
			Message: "Session not found",
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if err := viz.Render(c.Response(), s.Name, s.Handle.Nodes(), s.Handle.Edges()); err != nil {
		logger.Error("Failed to render graph", "err", err)
		return err
	}
	return nil
}
