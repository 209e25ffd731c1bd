package smartcut

import (
	"context"
	"sort"
)

// Strategy names how the target duration was approached
type Strategy string

const (
	StrategyNone        Strategy = "none"
	StrategySpeedOnly   Strategy = "speed_only"
	StrategySpeedAndCut Strategy = "speed_and_cut"
)

type reduction struct {
	strategy       Strategy
	speed          float64
	targetDuration float64
	removed        int
	removedSec     float64
	blocked        int
}

// reduce moves the kept duration towards originalDuration*(1-target). It first
// speeds everything up uniformly, up to MaxSpeed, and only when that is not
// enough removes the least important segments. Segments at or above the
// protect floor are never removed, so the target is best effort.
func (e *implEngine) reduce(ctx context.Context, segs []Segment, originalDuration, target float64) reduction {
	r := reduction{
		strategy:       StrategyNone,
		speed:          1.0,
		targetDuration: originalDuration * (1 - target),
	}

	current := keptDuration(segs)
	if current <= r.targetDuration {
		e.logger.Debug(ctx, "Kept %.1fs already within target %.1fs", current, r.targetDuration)
		return r
	}

	needed := (current - r.targetDuration) / current
	maxSpeed := e.cfg.MaxSpeed

	if needed <= 1-1/maxSpeed {
		r.strategy = StrategySpeedOnly
		r.speed = min(1/(1-needed), maxSpeed)
		applySpeed(segs, r.speed)
		e.logger.Info(ctx, "Speed-up %.2fx covers the target (%.1fs -> %.1fs)", r.speed, current, current/r.speed)
		return r
	}

	r.strategy = StrategySpeedAndCut
	r.speed = maxSpeed
	applySpeed(segs, maxSpeed)

	afterSpeed := current / maxSpeed
	e.logger.Info(ctx, "Speed-up %.2fx leaves %.1fs, target %.1fs", maxSpeed, afterSpeed, r.targetDuration)
	if afterSpeed <= r.targetDuration {
		return r
	}

	needToRemove := afterSpeed - r.targetDuration
	for _, s := range removalOrder(segs) {
		if r.removedSec >= needToRemove {
			break
		}
		if s.Importance >= e.cfg.ProtectFloor {
			r.blocked++
			continue
		}
		r.removedSec += s.Duration() / maxSpeed
		s.drop(ReasonTargetReduction)
		r.removed++
	}

	if r.removedSec < needToRemove {
		e.logger.Warn(ctx, "Target not reachable: %.1fs short, %d protected segments kept",
			needToRemove-r.removedSec, r.blocked)
	}
	return r
}

// removalOrder returns kept segments sorted by importance then text length,
// ascending. Ties keep transcript order.
func removalOrder(segs []Segment) []*Segment {
	kept := make([]*Segment, 0, len(segs))
	for i := range segs {
		if segs[i].Keep {
			kept = append(kept, &segs[i])
		}
	}

	sort.SliceStable(kept, func(a, b int) bool {
		if kept[a].Importance != kept[b].Importance {
			return kept[a].Importance < kept[b].Importance
		}
		return textLen(kept[a].Text) < textLen(kept[b].Text)
	})
	return kept
}

func applySpeed(segs []Segment, speed float64) {
	for i := range segs {
		if segs[i].Keep {
			segs[i].Speed = speed
		}
	}
}

func keptDuration(segs []Segment) float64 {
	total := 0.0
	for i := range segs {
		if segs[i].Keep {
			total += segs[i].Duration()
		}
	}
	return total
}

// playbackDuration is the kept duration after each segment's speed-up
func playbackDuration(segs []Segment) float64 {
	total := 0.0
	for i := range segs {
		if segs[i].Keep {
			total += segs[i].Duration() / segs[i].Speed
		}
	}
	return total
}
