package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/atlasgraph/atlas/internal/session"
	"github.com/atlasgraph/atlas/pkg/ai"
	"github.com/atlasgraph/atlas/pkg/graph"
)

// App bundles the shared dependencies of the HTTP handlers: the session
// registry, the AI client used for extraction, and the processing client.
type App struct {
	Sessions    *session.Registry
	AiClient    ai.GraphAIClient
	GraphClient *graph.GraphClient
}

// AppContext wraps the echo context with application state.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware injects the shared App into every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
