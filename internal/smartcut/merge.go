package smartcut

import "strings"

// merge coalesces kept segments into playable chunks. A segment joins the open
// chunk when the silence before it, scaled by playback speed, is at most
// MaxGap and it plays at the same speed.
func (e *implEngine) merge(segs []Segment) []MergedSegment {
	merged := make([]MergedSegment, 0)

	var open *MergedSegment
	for i := range segs {
		s := &segs[i]
		if !s.Keep {
			continue
		}

		if open != nil {
			gap := s.StartSec - open.EndSec
			if gap/open.Speed <= e.cfg.MaxGap && s.Speed == open.Speed {
				if s.EndSec > open.EndSec {
					open.EndSec = s.EndSec
				}
				open.Text += " " + strings.TrimSpace(s.Text)
				open.Indices = append(open.Indices, s.Index)
				continue
			}
			merged = append(merged, *open)
		}

		open = &MergedSegment{
			StartSec: s.StartSec,
			EndSec:   s.EndSec,
			Text:     strings.TrimSpace(s.Text),
			Speed:    s.Speed,
			Indices:  []int{s.Index},
		}
	}

	if open != nil {
		merged = append(merged, *open)
	}
	return merged
}
