package routes

import (
	"net/http"

	"github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/query"

	"github.com/labstack/echo/v4"
)

// GetSessionEntitiesHandler lists the entities of a session. With a ?type=
// query parameter the result is filtered and ranked by connection count.
func GetSessionEntitiesHandler(c echo.Context) error {
	type entitiesResponse struct {
		Message  string             `json:"message"`
		Entities []common.Entity    `json:"entities,omitempty"`
		Result   *query.QueryResult `json:"result,omitempty"`
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App

	s, ok := app.Sessions.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, entitiesResponse{
			Message: "Session not found",
		})
	}

	if entityType := c.QueryParam("type"); entityType != "" {
		return c.JSON(http.StatusOK, entitiesResponse{
			Message: "Entities retrieved successfully",
			Result:  s.Handle.FindByType(entityType),
		})
	}

	return c.JSON(http.StatusOK, entitiesResponse{
		Message:  "Entities retrieved successfully",
		Entities: s.Handle.Nodes(),
	})
}
