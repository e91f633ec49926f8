package server

import (
	"github.com/atlasgraph/atlas/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Session routes
	apiRoutes.GET("/sessions", routes.ListSessionsHandler)
	apiRoutes.POST("/sessions", routes.CreateSessionHandler)
	apiRoutes.DELETE("/sessions/:id", routes.DeleteSessionHandler)

	// Graph query routes
	apiRoutes.POST("/sessions/:id/query", routes.QuerySessionHandler)
	apiRoutes.GET("/sessions/:id/stats", routes.GetSessionStatsHandler)
	apiRoutes.GET("/sessions/:id/entities", routes.GetSessionEntitiesHandler)
	apiRoutes.GET("/sessions/:id/graph", routes.GetSessionGraphHandler)
}
