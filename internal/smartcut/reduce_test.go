package smartcut

import (
	"context"
	"math"
	"testing"
)

// uniformSegments returns n kept 10-second segments with the given importances
func uniformSegments(importances ...int) []Segment {
	segs := newSegments(contiguous(disjointTexts(len(importances)), 10))
	for i, imp := range importances {
		segs[i].Importance = imp
	}
	return segs
}

func TestReduceNoOpWithinTarget(t *testing.T) {
	e := newTestEngine(t, nil)
	segs := uniformSegments(5, 5, 5, 5)
	segs[1].drop(ReasonFiller)

	// kept 30s, original 40s, target 36s
	r := e.reduce(context.Background(), segs, 40, 0.1)
	if r.strategy != StrategyNone || r.speed != 1.0 {
		t.Errorf("reduce() = %+v, want no-op", r)
	}
	for _, s := range segs {
		if s.Keep && s.Speed != 1.0 {
			t.Errorf("segment %d speed = %v, want 1.0", s.Index, s.Speed)
		}
	}
}

func TestReduceSpeedOnly(t *testing.T) {
	e := newTestEngine(t, nil)
	segs := uniformSegments(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)

	r := e.reduce(context.Background(), segs, 100, 0.2)
	if r.strategy != StrategySpeedOnly {
		t.Fatalf("strategy = %q, want %q", r.strategy, StrategySpeedOnly)
	}
	if math.Abs(r.speed-1.25) > eps {
		t.Errorf("speed = %v, want 1.25", r.speed)
	}
	if r.removed != 0 {
		t.Errorf("removed = %d, want 0", r.removed)
	}
	if got := playbackDuration(segs); math.Abs(got-80) > 1e-6 {
		t.Errorf("playbackDuration() = %v, want 80", got)
	}
}

func TestReduceSpeedOnlyAtBoundary(t *testing.T) {
	e := newTestEngine(t, nil)
	segs := uniformSegments(5, 5, 5)

	// need exactly 1/3: covered by 1.5x alone
	r := e.reduce(context.Background(), segs, 30, 1.0/3)
	if r.removed != 0 {
		t.Errorf("removed = %d, want 0", r.removed)
	}
	if r.speed > DefaultMaxSpeed {
		t.Errorf("speed = %v above max", r.speed)
	}
}

func TestReduceSpeedAndCut(t *testing.T) {
	e := newTestEngine(t, nil)
	// ascending importance: idx 3, 0, 2, 7, then 5 and 9; 1, 4, 6, 8 are protected
	segs := uniformSegments(3, 8, 4, 2, 9, 6, 7, 5, 8, 6)

	r := e.reduce(context.Background(), segs, 100, 0.6)
	if r.strategy != StrategySpeedAndCut || r.speed != DefaultMaxSpeed {
		t.Fatalf("reduce() = %+v, want speed-and-cut at max speed", r)
	}

	// need 100/1.5-40 = 26.67s of post-speed time, 6.67s per segment: 4 or 5 segments
	wantRemovedFirst := []int{3, 0, 2, 7}
	for _, idx := range wantRemovedFirst {
		if segs[idx].Reason != ReasonTargetReduction {
			t.Errorf("segment %d reason = %q, want target_reduction", idx, segs[idx].Reason)
		}
	}
	for _, idx := range []int{1, 4, 6, 8} {
		if !segs[idx].Keep {
			t.Errorf("protected segment %d removed", idx)
		}
	}
	if got := playbackDuration(segs); got > 40+1e-6 {
		t.Errorf("playbackDuration() = %v, want <= 40", got)
	}
}

func TestReduceProtectedFloorBlocksTarget(t *testing.T) {
	e := newTestEngine(t, nil)
	segs := uniformSegments(7, 9, 2, 10, 8)

	r := e.reduce(context.Background(), segs, 50, 0.95)
	if r.removed != 1 || segs[2].Keep {
		t.Errorf("removed = %d, want only the unprotected segment", r.removed)
	}
	for _, idx := range []int{0, 1, 3, 4} {
		if !segs[idx].Keep {
			t.Errorf("protected segment %d removed", idx)
		}
	}
	if r.blocked == 0 {
		t.Error("blocked = 0, want protected segments counted")
	}
	// soft target: still above 2.5s but no error
	if got := playbackDuration(segs); got <= r.targetDuration {
		t.Errorf("playbackDuration() = %v, expected target %v to be unreachable", got, r.targetDuration)
	}
}

func TestReduceCustomFloorAndSpeed(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.MaxSpeed = 2
		c.ProtectFloor = 4
	})
	segs := uniformSegments(3, 4, 3, 5)

	r := e.reduce(context.Background(), segs, 40, 0.9)
	if r.speed != 2 {
		t.Errorf("speed = %v, want 2", r.speed)
	}
	if segs[1].Keep != true || segs[3].Keep != true {
		t.Error("segments at or above custom floor removed")
	}
	if segs[0].Keep || segs[2].Keep {
		t.Error("segments below custom floor kept")
	}
}

func TestRemovalOrder(t *testing.T) {
	segs := segmentsOf("abcdefghijkl", "abc", "abcdef", "xyz")
	segs[0].Importance = 2
	segs[1].Importance = 4
	segs[2].Importance = 2
	segs[3].Importance = 4
	segs[2].Keep = false

	got := removalOrder(segs)
	want := []int{0, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("len(removalOrder()) = %d, want %d", len(got), len(want))
	}
	for i, idx := range want {
		if got[i].Index != idx {
			t.Errorf("removalOrder()[%d] = %d, want %d", i, got[i].Index, idx)
		}
	}
}
