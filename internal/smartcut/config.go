package smartcut

import (
	"fmt"

	"github.com/nguyentantai21042004/smart-cut/internal/lexicon"
)

const (
	DefaultSimilarityThreshold = 0.8
	DefaultNoveltyThreshold    = 0.3
	DefaultMaxGap              = 0.3
	DefaultMaxSpeed            = 1.5
	DefaultProtectFloor        = 7
	DefaultCorrectionMaxLen    = 10
)

// Config holds the tunable thresholds and rule data of the engine
type Config struct {
	// SimilarityThreshold is the Jaccard index above which adjacent segments are duplicates.
	SimilarityThreshold float64
	// NoveltyThreshold is the similarity to the previous segment below which a segment counts as new material.
	NoveltyThreshold float64
	// MaxGap is the largest speed-adjusted silence, in seconds, bridged when merging.
	MaxGap float64
	// MaxSpeed caps the uniform playback multiplier.
	MaxSpeed float64
	// ProtectFloor is the importance at or above which target reduction never removes a segment.
	ProtectFloor int
	// CorrectionMaxLen is the rune length below which a segment with a correction marker is dropped.
	CorrectionMaxLen int
	Lexicon          *lexicon.Lexicon
}

// DefaultConfig returns the engine defaults with the built-in lexicon
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		NoveltyThreshold:    DefaultNoveltyThreshold,
		MaxGap:              DefaultMaxGap,
		MaxSpeed:            DefaultMaxSpeed,
		ProtectFloor:        DefaultProtectFloor,
		CorrectionMaxLen:    DefaultCorrectionMaxLen,
		Lexicon:             lexicon.Default(),
	}
}

// Validate rejects out-of-range thresholds
func (c Config) Validate() error {
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold %v not in (0,1]", ErrInvalidConfig, c.SimilarityThreshold)
	}
	if c.NoveltyThreshold < 0 || c.NoveltyThreshold > 1 {
		return fmt.Errorf("%w: novelty threshold %v not in [0,1]", ErrInvalidConfig, c.NoveltyThreshold)
	}
	if c.MaxGap < 0 {
		return fmt.Errorf("%w: max gap %v is negative", ErrInvalidConfig, c.MaxGap)
	}
	if c.MaxSpeed < 1 {
		return fmt.Errorf("%w: max speed %v below 1.0", ErrInvalidConfig, c.MaxSpeed)
	}
	if c.ProtectFloor < 0 {
		return fmt.Errorf("%w: protect floor %d is negative", ErrInvalidConfig, c.ProtectFloor)
	}
	if c.CorrectionMaxLen < 0 {
		return fmt.Errorf("%w: correction max length %d is negative", ErrInvalidConfig, c.CorrectionMaxLen)
	}
	return nil
}

// Options are per-run parameters
type Options struct {
	// TargetReduction, when set, asks for the output to be this fraction shorter than the source timeline.
	TargetReduction *float64
}

// WithTarget returns Options requesting the given reduction ratio
func WithTarget(ratio float64) Options {
	return Options{TargetReduction: &ratio}
}
