package smartcut

import "strings"

const (
	baseImportance = 5
	minImportance  = 1
	maxImportance  = 10
)

// scoreImportance rates segs[i] from 1 to 10 using length, keywords, questions,
// position in the talk and novelty against the previous segment. It must run
// before any removal so neighbours reflect the original discourse.
func (e *implEngine) scoreImportance(segs []Segment, i int) int {
	text := strings.TrimSpace(segs[i].Text)
	score := baseImportance

	switch n := textLen(text); {
	case n > 30:
		score += 3
	case n > 15:
		score += 2
	case n > 8:
		score += 1
	case n <= 3:
		score -= 2
	}

	if e.matcher.HasKeyword(text) {
		score++
	}

	if e.matcher.IsQuestion(text) {
		score++
	}

	total := float64(len(segs))
	if pos := float64(i); pos < total*0.1 || pos > total*0.9 {
		score++
	}

	if i > 0 && Similarity(text, strings.TrimSpace(segs[i-1].Text)) < e.cfg.NoveltyThreshold {
		score++
	}

	return clamp(score, minImportance, maxImportance)
}

func (e *implEngine) scoreAll(segs []Segment) {
	for i := range segs {
		segs[i].Importance = e.scoreImportance(segs, i)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
