package routes

import (
	"net/http"

	"github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/internal/session"

	"github.com/labstack/echo/v4"
)

// ListSessionsHandler returns all active graph sessions in creation order.
func ListSessionsHandler(c echo.Context) error {
	type listSessionsResponse struct {
		Message  string             `json:"message"`
		Sessions []*session.Session `json:"sessions"`
	}

	app := c.(*middleware.AppContext).App

	return c.JSON(http.StatusOK, listSessionsResponse{
		Message:  "Sessions retrieved successfully",
		Sessions: app.Sessions.List(),
	})
}
