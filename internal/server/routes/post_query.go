package routes

import (
	"net/http"

	"github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/pkg/query"

	"github.com/labstack/echo/v4"
)

// QuerySessionHandler answers a natural-language question against the
// graph of the given session.
func QuerySessionHandler(c echo.Context) error {
	type queryBody struct {
		Question string `json:"question" validate:"required"`
	}

	type queryResponse struct {
		Message string             `json:"message"`
		Result  *query.QueryResult `json:"result,omitempty"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Question is required",
		})
	}

	id := c.Param("id")
	app := c.(*middleware.AppContext).App

	s, ok := app.Sessions.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, queryResponse{
			Message: "Session not found",
		})
	}

	return c.JSON(http.StatusOK, queryResponse{
		Message: "Query executed successfully",
		Result:  s.Handle.Query(data.Question),
	})
}
