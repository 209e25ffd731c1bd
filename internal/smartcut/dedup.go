package smartcut

import "strings"

// deduplicate makes one forward pass over neighbouring kept pairs and drops the
// weaker of any near-duplicate pair, then drops short self-corrections. A pair
// decision is final: it is not revisited after a later removal.
func (e *implEngine) deduplicate(segs []Segment) (duplicates, corrections int) {
	for i := 1; i < len(segs); i++ {
		prev, cur := &segs[i-1], &segs[i]
		if !prev.Keep || !cur.Keep {
			continue
		}
		if Similarity(strings.TrimSpace(prev.Text), strings.TrimSpace(cur.Text)) <= e.cfg.SimilarityThreshold {
			continue
		}

		loserOf(prev, cur).drop(ReasonDuplicate)
		duplicates++
	}

	for i := range segs {
		s := &segs[i]
		if !s.Keep {
			continue
		}
		if textLen(s.Text) < e.cfg.CorrectionMaxLen && e.matcher.HasCorrection(s.Text) {
			s.drop(ReasonCorrection)
			corrections++
		}
	}

	return duplicates, corrections
}

// loserOf picks which of two near-duplicates to drop: lower importance, then
// shorter text, then the later one.
func loserOf(prev, cur *Segment) *Segment {
	switch {
	case prev.Importance < cur.Importance:
		return prev
	case prev.Importance > cur.Importance:
		return cur
	}

	prevLen, curLen := textLen(prev.Text), textLen(cur.Text)
	if prevLen < curLen {
		return prev
	}
	return cur
}
