package routes

import (
	"net/http"

	"github.com/atlasgraph/atlas/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// DeleteSessionHandler removes a session and frees its in-memory graph.
func DeleteSessionHandler(c echo.Context) error {
	type deleteSessionResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App

	if !app.Sessions.Delete(id) {
		return c.JSON(http.StatusNotFound, deleteSessionResponse{
			Message: "Session not found",
		})
	}

	return c.JSON(http.StatusOK, deleteSessionResponse{
		Message: "Session deleted successfully",
	})
}
