package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/internal/session"
	"github.com/atlasgraph/atlas/internal/util"
	"github.com/atlasgraph/atlas/pkg/ai"
	oll "github.com/atlasgraph/atlas/pkg/ai/ollama"
	oai "github.com/atlasgraph/atlas/pkg/ai/openai"
	"github.com/atlasgraph/atlas/pkg/graph"
	"github.com/atlasgraph/atlas/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewAiClient builds the extraction client selected by the AI_ADAPTER
// environment variable: "ollama", "mock", or the OpenAI-compatible default.
func NewAiClient() ai.GraphAIClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := oll.NewGraphOllamaClient(oll.NewGraphOllamaClientParams{
			CompletionModel: util.GetEnvString("AI_CHAT_MODEL", "llama3.1"),
			ExtractionModel: util.GetEnvString("AI_EXTRACT_MODEL", "llama3.1"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvInt("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	case "mock":
		return ai.NewMockGraphAIClient()
	default:
		return oai.NewGraphOpenAIClient(oai.NewGraphOpenAIClientParams{
			CompletionModel: util.GetEnvString("AI_CHAT_MODEL", "gpt-4o-mini"),
			ExtractionModel: util.GetEnvString("AI_EXTRACT_MODEL", "gpt-4o-mini"),

			ChatURL: util.GetEnv("AI_CHAT_URL"),
			ChatKey: util.GetEnv("AI_CHAT_KEY"),
		})
	}
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	graphClient, err := graph.NewGraphClient(graph.NewGraphClientParams{
		TokenEncoder:       util.GetEnvString("TOKEN_ENCODER", "o200k_base"),
		ParallelFiles:      util.GetEnvInt("PARALLEL_FILES", 2),
		ParallelAiRequests: util.GetEnvInt("AI_PARALLEL_REQ", 4),
		MaxRetries:         util.GetEnvInt("AI_MAX_RETRIES", 3),
	})
	if err != nil {
		logger.Fatal("Failed to create graph client", "err", err)
	}

	app := &mid.App{
		Sessions:    session.NewRegistry(),
		AiClient:    NewAiClient(),
		GraphClient: graphClient,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("256M"))

	RegisterRoutes(e)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
