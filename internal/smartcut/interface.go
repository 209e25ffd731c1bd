package smartcut

import "context"

// Engine turns a transcript into a shortened, re-timed cut list
type Engine interface {
	Run(ctx context.Context, utts []Utterance, opts Options) (*Result, error)
	// Settings returns the thresholds and lexicon the engine runs with
	Settings() Config
}
