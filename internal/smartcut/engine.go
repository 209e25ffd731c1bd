package smartcut

import (
	"context"
	"fmt"
	"math"
)

// Metrics summarises one run
type Metrics struct {
	OriginalDuration float64        `json:"original_duration"`
	FilteredDuration float64        `json:"filtered_duration"`
	TargetDuration   float64        `json:"target_duration,omitempty"`
	FinalDuration    float64        `json:"final_duration"`
	CompressionRatio float64        `json:"compression_ratio"`
	GlobalSpeed      float64        `json:"global_speed"`
	Strategy         Strategy       `json:"strategy"`
	TotalSegments    int            `json:"total_segments"`
	KeptSegments     int            `json:"kept_segments"`
	MergedSegments   int            `json:"merged_segments"`
	Removed          map[Reason]int `json:"removed"`
}

// Result is the full output of a run: the audit trail, the cut list and its metrics
type Result struct {
	Segments []Segment       `json:"segments"`
	Merged   []MergedSegment `json:"merged"`
	Metrics  Metrics         `json:"metrics"`
}

// Run scores, filters, optionally reduces to the target and merges the transcript
func (e *implEngine) Run(ctx context.Context, utts []Utterance, opts Options) (*Result, error) {
	target, hasTarget, err := targetOf(opts)
	if err != nil {
		return nil, err
	}
	if err := validateUtterances(utts); err != nil {
		return nil, err
	}

	if len(utts) == 0 {
		e.logger.Info(ctx, "Empty transcript, nothing to cut")
		return &Result{
			Segments: []Segment{},
			Merged:   []MergedSegment{},
			Metrics: Metrics{
				GlobalSpeed: 1.0,
				Strategy:    StrategyNone,
				Removed:     map[Reason]int{},
			},
		}, nil
	}

	segs := newSegments(utts)
	originalDuration := segs[len(segs)-1].EndSec

	e.logger.Info(ctx, "Analyzing %d segments (%.1fs)", len(segs), originalDuration)

	// Step 1: Score before anything is removed
	e.scoreAll(segs)

	// Step 2: Lexical rules
	lexical := e.classify(segs)
	e.logger.Debug(ctx, "Lexical layer dropped %d segments", lexical)

	// Step 3: Duplicates and self-corrections
	duplicates, corrections := e.deduplicate(segs)
	e.logger.Debug(ctx, "Dedup layer dropped %d duplicates, %d corrections", duplicates, corrections)

	filtered := keptDuration(segs)

	// Step 4: Reach for the target duration
	red := reduction{strategy: StrategyNone, speed: 1.0}
	if hasTarget {
		red = e.reduce(ctx, segs, originalDuration, target)
	}

	// Step 5: Merge into playable chunks
	merged := e.merge(segs)

	metrics := Metrics{
		OriginalDuration: originalDuration,
		FilteredDuration: filtered,
		FinalDuration:    playbackDuration(segs),
		GlobalSpeed:      red.speed,
		Strategy:         red.strategy,
		TotalSegments:    len(segs),
		MergedSegments:   len(merged),
		Removed:          make(map[Reason]int),
	}
	if hasTarget {
		metrics.TargetDuration = red.targetDuration
	}
	if originalDuration > 0 {
		metrics.CompressionRatio = 1 - metrics.FinalDuration/originalDuration
	}
	for i := range segs {
		if segs[i].Keep {
			metrics.KeptSegments++
		} else {
			metrics.Removed[segs[i].Reason]++
		}
	}

	e.logger.Info(ctx, "Kept %d/%d segments in %d chunks: %.1fs -> %.1fs (%.1f%% shorter, %.2fx)",
		metrics.KeptSegments, metrics.TotalSegments, metrics.MergedSegments,
		metrics.OriginalDuration, metrics.FinalDuration, metrics.CompressionRatio*100, metrics.GlobalSpeed)

	return &Result{
		Segments: segs,
		Merged:   merged,
		Metrics:  metrics,
	}, nil
}

func targetOf(opts Options) (float64, bool, error) {
	if opts.TargetReduction == nil {
		return 0, false, nil
	}
	t := *opts.TargetReduction
	if !(t >= 0 && t < 1) {
		return 0, false, fmt.Errorf("%w: got %v", ErrInvalidTarget, t)
	}
	return t, true, nil
}

// validateUtterances rejects negative, inverted or non-finite spans and start
// times that go backwards
func validateUtterances(utts []Utterance) error {
	prevStart := 0.0
	for i, u := range utts {
		if !finite(u.StartSec) || !finite(u.EndSec) {
			return fmt.Errorf("%w: segment %d has non-finite time", ErrInvalidSegment, i)
		}
		if u.StartSec < 0 {
			return fmt.Errorf("%w: segment %d starts at %v", ErrInvalidSegment, i, u.StartSec)
		}
		if u.EndSec < u.StartSec {
			return fmt.Errorf("%w: segment %d ends at %v before its start %v", ErrInvalidSegment, i, u.EndSec, u.StartSec)
		}
		if u.StartSec < prevStart {
			return fmt.Errorf("%w: segment %d starts at %v after %v", ErrUnordered, i, u.StartSec, prevStart)
		}
		prevStart = u.StartSec
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
