package smartcut

import "strings"

// classifyText returns the lexical removal reason for text, or ReasonNone.
// Rules are checked in order and the first hit wins.
func (e *implEngine) classifyText(text string) Reason {
	t := strings.TrimSpace(text)
	n := textLen(t)

	switch {
	case t == "":
		return ReasonEmpty
	case e.matcher.IsFiller(t):
		return ReasonFiller
	case distinctRunes(t) <= 3 && n > 2:
		return ReasonRepetitive
	case n <= 2:
		return ReasonTooShort
	}
	return ReasonNone
}

// classify drops empty, filler, stutter and too-short segments. It returns the
// number of segments dropped.
func (e *implEngine) classify(segs []Segment) int {
	dropped := 0
	for i := range segs {
		if !segs[i].Keep {
			continue
		}
		if reason := e.classifyText(segs[i].Text); reason != ReasonNone {
			segs[i].drop(reason)
			dropped++
		}
	}
	return dropped
}
