package routes

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/atlasgraph/atlas/internal/server/middleware"
	"github.com/atlasgraph/atlas/internal/session"
	"github.com/atlasgraph/atlas/internal/util"
	"github.com/atlasgraph/atlas/pkg/graph"
	"github.com/atlasgraph/atlas/pkg/loader"
	csvload "github.com/atlasgraph/atlas/pkg/loader/csv"
	docload "github.com/atlasgraph/atlas/pkg/loader/doc"
	excelload "github.com/atlasgraph/atlas/pkg/loader/excel"
	ioload "github.com/atlasgraph/atlas/pkg/loader/io"
	pdfload "github.com/atlasgraph/atlas/pkg/loader/pdf"
	textload "github.com/atlasgraph/atlas/pkg/loader/text"
	webload "github.com/atlasgraph/atlas/pkg/loader/web"
	"github.com/atlasgraph/atlas/pkg/logger"
	"github.com/atlasgraph/atlas/pkg/store"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// graphFileFor picks the loader matching the uploaded file's extension.
// Unknown extensions are treated as plain text.
func graphFileFor(id, path string, maxTokens int, base loader.GraphFileLoader) loader.GraphFile {
	params := loader.NewGraphFileParams{
		ID:        id,
		FilePath:  path,
		MaxTokens: maxTokens,
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		params.Loader = csvload.NewCSVGraphLoader(base)
		return loader.NewGraphCSVFile(params)
	case ".xlsx", ".xlsm":
		params.Loader = excelload.NewExcelGraphLoader(base)
		return loader.NewGraphCSVFile(params)
	case ".docx":
		params.Loader = docload.NewDocGraphLoader(base)
		return loader.NewGraphDocumentFile(params)
	case ".pdf":
		params.Loader = pdfload.NewPDFGraphLoader(base)
		return loader.NewGraphDocumentFile(params)
	default:
		params.Loader = textload.NewTextGraphLoader(base)
		return loader.NewGraphDocumentFile(params)
	}
}

// CreateSessionHandler builds a new graph session from multipart/form-data
// file uploads. The files are extracted and the resulting graph is stored
// as an in-memory session.
func CreateSessionHandler(c echo.Context) error {
	type createSessionBody struct {
		Name string `form:"name"`
	}

	type createSessionResponse struct {
		Message string             `json:"message"`
		Session *session.Session   `json:"session,omitempty"`
		Stats   *store.Stats       `json:"stats,omitempty"`
		Dropped []store.Diagnostic `json:"dropped_relationships,omitempty"`
	}

	data := new(createSessionBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createSessionResponse{
			Message: "Invalid request body",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, createSessionResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	urls := form.Value["urls"]
	if len(uploads) == 0 && len(urls) == 0 {
		return c.JSON(http.StatusBadRequest, createSessionResponse{
			Message: "No files provided",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	tmpDir, err := os.MkdirTemp("", "atlas-upload-")
	if err != nil {
		logger.Error("Failed to create upload dir", "err", err)
		return c.JSON(http.StatusInternalServerError, createSessionResponse{
			Message: "Internal server error",
		})
	}
	defer os.RemoveAll(tmpDir)

	base := ioload.NewIOGraphFileLoader()
	maxTokens := util.GetEnvInt("GRAPH_MAX_TOKENS", 1000)

	files := make([]loader.GraphFile, 0, len(uploads))
	for i, upload := range uploads {
		src, err := upload.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, createSessionResponse{
				Message: "Could not open file",
			})
		}

		path := filepath.Join(tmpDir, fmt.Sprintf("%d_%s", i, filepath.Base(upload.Filename)))
		dst, err := os.Create(path)
		if err != nil {
			src.Close()
			logger.Error("Failed to store upload", "err", err)
			return c.JSON(http.StatusInternalServerError, createSessionResponse{
				Message: "Internal server error",
			})
		}
		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			logger.Error("Failed to store upload", "err", err)
			return c.JSON(http.StatusInternalServerError, createSessionResponse{
				Message: "Internal server error",
			})
		}

		fID, err := gonanoid.New()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, createSessionResponse{
				Message: "Internal server error",
			})
		}
		files = append(files, graphFileFor(fID, path, maxTokens, base))
	}

	if len(urls) > 0 {
		webLoader := webload.NewWebGraphLoader()
		for _, u := range urls {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			fID, err := gonanoid.New()
			if err != nil {
				return c.JSON(http.StatusInternalServerError, createSessionResponse{
					Message: "Internal server error",
				})
			}
			files = append(files, loader.NewGraphDocumentFile(loader.NewGraphFileParams{
				ID:        fID,
				FilePath:  u,
				MaxTokens: maxTokens,
				Loader:    webLoader,
			}))
		}
	}

	payload, err := app.GraphClient.ProcessFiles(ctx, files, app.AiClient)
	if err != nil {
		logger.Error("Failed to process files", "err", err)
		return c.JSON(http.StatusInternalServerError, createSessionResponse{
			Message: "Internal server error",
		})
	}

	handle, err := graph.BuildGraphFromPayload(payload)
	if err != nil {
		logger.Error("Failed to build graph", "err", err)
		return c.JSON(http.StatusInternalServerError, createSessionResponse{
			Message: "Internal server error",
		})
	}

	name := strings.TrimSpace(data.Name)
	if name == "" {
		if len(uploads) > 0 {
			name = uploads[0].Filename
		} else {
			name = urls[0]
		}
	}

	s, err := app.Sessions.Add(name, handle)
	if err != nil {
		logger.Error("Failed to register session", "err", err)
		return c.JSON(http.StatusInternalServerError, createSessionResponse{
			Message: "Internal server error",
		})
	}

	stats := handle.Stats()
	return c.JSON(http.StatusOK, createSessionResponse{
		Message: "Session created successfully",
		Session: s,
		Stats:   &stats,
		Dropped: handle.Diagnostics(),
	})
}
