package processor

import (
	"context"

	"github.com/nguyentantai21042004/smart-cut/internal/report"
	"github.com/nguyentantai21042004/smart-cut/internal/store"
)

// Processor defines the interface for transcript processing operations
type Processor interface {
	// Analyze runs the engine on one transcript and writes its outputs, leaving the input in place
	Analyze(ctx context.Context, transcriptPath string) (*report.Report, error)
	// Process analyzes the transcript and moves it to the archive
	Process(ctx context.Context, transcriptPath string) error
	// ProcessAll processes the given transcripts with bounded concurrency
	ProcessAll(ctx context.Context, paths []string) error
}

// RunStore records finished runs so identical inputs are not processed twice
type RunStore interface {
	RunByHash(ctx context.Context, hash string) (*store.Run, error)
	SaveRun(ctx context.Context, r store.Run) (int64, error)
}
