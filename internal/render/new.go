package render

import (
	"github.com/nguyentantai21042004/smart-cut/internal/config"
	"github.com/nguyentantai21042004/smart-cut/internal/logger"
	"github.com/nguyentantai21042004/smart-cut/pkg/executor"
)

type implRenderer struct {
	cfg      config.RenderConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Renderer instance. Batch files are written under tempDir.
func New(cfg config.RenderConfig, tempDir string, exec executor.Executor, log logger.Logger) Renderer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 20
	}
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = "ffprobe"
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &implRenderer{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
