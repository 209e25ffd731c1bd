package processor

import (
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/smart-cut/internal/config"
	"github.com/nguyentantai21042004/smart-cut/internal/logger"
	"github.com/nguyentantai21042004/smart-cut/internal/render"
	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

type implProcessor struct {
	cfg         *config.Config
	engine      smartcut.Engine
	renderer    render.Renderer
	store       RunStore
	logger      logger.Logger
	renderSlots *semaphore.Weighted
}

// New creates a new Processor instance. renderer and runs may be nil to skip rendering and run history.
func New(cfg *config.Config, engine smartcut.Engine, renderer render.Renderer, runs RunStore, log logger.Logger) Processor {
	if log == nil {
		log = logger.NewNop()
	}

	slots := cfg.Render.MaxConcurrent
	if slots <= 0 {
		slots = 1
	}

	return &implProcessor{
		cfg:         cfg,
		engine:      engine,
		renderer:    renderer,
		store:       runs,
		logger:      log,
		renderSlots: semaphore.NewWeighted(int64(slots)),
	}
}
