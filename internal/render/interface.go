package render

import (
	"context"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

// Renderer cuts a source video down to the merged chunks of a smart-cut run
type Renderer interface {
	Render(ctx context.Context, chunks []smartcut.MergedSegment, videoPath, outputPath string) error
	Probe(ctx context.Context, path string) (float64, error)
}
