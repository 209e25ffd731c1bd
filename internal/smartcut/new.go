package smartcut

import (
	"fmt"

	"github.com/nguyentantai21042004/smart-cut/internal/lexicon"
	"github.com/nguyentantai21042004/smart-cut/internal/logger"
)

type implEngine struct {
	cfg     Config
	matcher *lexicon.Matcher
	logger  logger.Logger
}

// New creates an Engine. A nil lexicon in cfg disables the lexicon-driven rules.
func New(cfg Config, log logger.Logger) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate engine config: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &implEngine{
		cfg:     cfg,
		matcher: lexicon.Compile(cfg.Lexicon),
		logger:  log,
	}, nil
}

func (e *implEngine) Settings() Config {
	return e.cfg
}
