package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atlasgraph/atlas/internal/server"
	"github.com/atlasgraph/atlas/internal/util"
	"github.com/atlasgraph/atlas/pkg/graph"
	"github.com/atlasgraph/atlas/pkg/loader"
	csvload "github.com/atlasgraph/atlas/pkg/loader/csv"
	docload "github.com/atlasgraph/atlas/pkg/loader/doc"
	excelload "github.com/atlasgraph/atlas/pkg/loader/excel"
	ioload "github.com/atlasgraph/atlas/pkg/loader/io"
	pdfload "github.com/atlasgraph/atlas/pkg/loader/pdf"
	s3load "github.com/atlasgraph/atlas/pkg/loader/s3"
	textload "github.com/atlasgraph/atlas/pkg/loader/text"
	webload "github.com/atlasgraph/atlas/pkg/loader/web"
	"github.com/atlasgraph/atlas/pkg/logger"
	"github.com/atlasgraph/atlas/pkg/logger/console"
	"github.com/atlasgraph/atlas/pkg/viz"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type fileList []string

func (f *fileList) String() string {
	return strings.Join(*f, ",")
}

func (f *fileList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

// graphFile routes a source reference to its loader. s3://bucket/key pulls
// from object storage, http(s) URLs go through readability, everything else
// is a local path dispatched on extension.
func graphFile(ctx context.Context, source string, maxTokens int, base loader.GraphFileLoader) (loader.GraphFile, error) {
	id, err := gonanoid.New()
	if err != nil {
		return loader.GraphFile{}, err
	}

	params := loader.NewGraphFileParams{
		ID:        id,
		FilePath:  source,
		MaxTokens: maxTokens,
	}

	if rest, isS3 := strings.CutPrefix(source, "s3://"); isS3 {
		bucket, key, ok := strings.Cut(rest, "/")
		if !ok || key == "" {
			return loader.GraphFile{}, fmt.Errorf("invalid s3 source %q, expected s3://bucket/key", source)
		}
		s3Loader, err := s3load.NewS3GraphFileLoader(ctx, s3load.NewS3GraphFileLoaderParams{
			Bucket:    bucket,
			Endpoint:  util.GetEnv("S3_ENDPOINT"),
			Region:    util.GetEnvString("S3_REGION", "us-east-1"),
			AccessKey: util.GetEnv("S3_ACCESS_KEY"),
			SecretKey: util.GetEnv("S3_SECRET_KEY"),
		})
		if err != nil {
			return loader.GraphFile{}, err
		}
		params.FilePath = key
		params.Loader = s3Loader
		if strings.EqualFold(filepath.Ext(key), ".csv") {
			return loader.NewGraphCSVFile(params), nil
		}
		return loader.NewGraphDocumentFile(params), nil
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		params.Loader = webload.NewWebGraphLoader()
		return loader.NewGraphDocumentFile(params), nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".csv":
		params.Loader = csvload.NewCSVGraphLoader(base)
		return loader.NewGraphCSVFile(params), nil
	case ".xlsx", ".xlsm":
		params.Loader = excelload.NewExcelGraphLoader(base)
		return loader.NewGraphCSVFile(params), nil
	case ".docx":
		params.Loader = docload.NewDocGraphLoader(base)
		return loader.NewGraphDocumentFile(params), nil
	case ".pdf":
		params.Loader = pdfload.NewPDFGraphLoader(base)
		return loader.NewGraphDocumentFile(params), nil
	default:
		params.Loader = textload.NewTextGraphLoader(base)
		return loader.NewGraphDocumentFile(params), nil
	}
}

func run() error {
	var sources fileList
	flag.Var(&sources, "file", "source to ingest: local path, http(s) URL, or s3://bucket/key (repeatable)")
	stats := flag.Bool("stats", false, "print graph statistics")
	htmlOut := flag.String("html", "", "write an interactive HTML visualization to this path")
	maxTokens := flag.Int("max-tokens", 1000, "token budget per extraction unit")
	flag.Parse()

	if len(sources) == 0 {
		return fmt.Errorf("at least one -file source is required")
	}

	ctx := context.Background()
	base := ioload.NewIOGraphFileLoader()

	files := make([]loader.GraphFile, 0, len(sources))
	for _, source := range sources {
		file, err := graphFile(ctx, source, *maxTokens, base)
		if err != nil {
			return fmt.Errorf("failed to prepare %s: %w", source, err)
		}
		files = append(files, file)
	}

	graphClient, err := graph.NewGraphClient(graph.NewGraphClientParams{
		TokenEncoder:       util.GetEnvString("TOKEN_ENCODER", "o200k_base"),
		ParallelFiles:      util.GetEnvInt("PARALLEL_FILES", 2),
		ParallelAiRequests: util.GetEnvInt("AI_PARALLEL_REQ", 4),
		MaxRetries:         util.GetEnvInt("AI_MAX_RETRIES", 3),
	})
	if err != nil {
		return err
	}

	payload, err := graphClient.ProcessFiles(ctx, files, server.NewAiClient())
	if err != nil {
		return err
	}

	handle, err := graph.BuildGraphFromPayload(payload)
	if err != nil {
		return err
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	if *stats {
		if err := out.Encode(handle.Stats()); err != nil {
			return err
		}
	}

	if *htmlOut != "" {
		f, err := os.Create(*htmlOut)
		if err != nil {
			return err
		}
		if err := viz.Render(f, "Knowledge Graph", handle.Nodes(), handle.Edges()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("Wrote visualization", "path", *htmlOut)
	}

	for _, question := range flag.Args() {
		if err := out.Encode(handle.Query(question)); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	util.LoadEnv()

	logger.Init(console.NewConsoleBackend(console.ConsoleBackendParams{
		Debug: util.GetEnvBool("DEBUG", false),
	}))

	if err := run(); err != nil {
		logger.Fatal("Command failed", "err", err)
	}
}
