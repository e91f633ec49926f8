package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlasgraph/atlas/internal/util"
	"github.com/atlasgraph/atlas/pkg/ai"
	"github.com/atlasgraph/atlas/pkg/common"
	"github.com/atlasgraph/atlas/pkg/loader"
	"github.com/atlasgraph/atlas/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ProcessFiles chunks every file into token-budgeted units, runs entity
// extraction over all units concurrently, and merges the per-unit payloads
// into a single deduplicated ExtractionPayload.
//
// An extraction that keeps failing after the configured retries contributes
// the fallback payload instead of failing the whole run. ProcessFiles only
// errors when a file cannot be loaded or chunked, or when the context is
// canceled.
func (g *GraphClient) ProcessFiles(
	ctx context.Context,
	files []loader.GraphFile,
	aiClient ai.GraphAIClient,
) (*common.ExtractionPayload, error) {
	merger := newPayloadMerger()
	var mergeMu sync.Mutex

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallelFiles)
	for _, file := range files {
		f := file
		eg.Go(func() error {
			payload, err := g.processFile(gCtx, f, aiClient)
			if err != nil {
				return fmt.Errorf("failed to process file %s: %w", f.FilePath, err)
			}

			mergeMu.Lock()
			merger.add(payload)
			mergeMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return merger.payload(), nil
}

func (g *GraphClient) processFile(
	ctx context.Context,
	file loader.GraphFile,
	aiClient ai.GraphAIClient,
) (*common.ExtractionPayload, error) {
	units, err := getUnitsFromText(ctx, file, g.tokenEncoder)
	if err != nil {
		return nil, fmt.Errorf("failed to extract units from input text: %w", err)
	}

	merger := newPayloadMerger()
	var mergeMu sync.Mutex

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.parallelAiRequests)
	for _, unit := range units {
		u := unit
		eg.Go(func() error {
			payload, err := util.RetryWithContext(gCtx, g.maxRetries, func(ctx context.Context) (*common.ExtractionPayload, error) {
				return ai.ExtractGraph(ctx, aiClient, u.text)
			})
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				logger.Warn(fmt.Sprintf("Extraction failed for unit %s of %s, using fallback: %v", u.id, file.FilePath, err))
				payload = ai.FallbackPayload()
			}

			mergeMu.Lock()
			merger.add(payload)
			mergeMu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return merger.payload(), nil
}
