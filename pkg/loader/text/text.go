package text

import (
	"context"

	"github.com/atlasgraph/atlas/pkg/loader"
)

// TextGraphLoader passes plain text files through unchanged. It exists so
// that .txt and .md inputs go through the same loader pipeline as parsed
// formats.
type TextGraphLoader struct {
	loader loader.GraphFileLoader
}

// NewTextGraphLoader creates a passthrough loader over the given base loader.
func NewTextGraphLoader(loader loader.GraphFileLoader) *TextGraphLoader {
	return &TextGraphLoader{loader: loader}
}

// GetFileText returns the raw file bytes from the base loader.
func (l *TextGraphLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	return l.loader.GetFileText(ctx, file)
}
