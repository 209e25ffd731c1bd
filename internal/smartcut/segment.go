package smartcut

import (
	"strings"
	"unicode/utf8"
)

// Reason records which layer dropped a segment
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonEmpty           Reason = "empty"
	ReasonFiller          Reason = "filler"
	ReasonRepetitive      Reason = "repetitive"
	ReasonTooShort        Reason = "too_short"
	ReasonDuplicate       Reason = "duplicate"
	ReasonCorrection      Reason = "correction"
	ReasonTargetReduction Reason = "target_reduction"
)

// Reasons lists every removal reason in pipeline order
var Reasons = []Reason{
	ReasonEmpty,
	ReasonFiller,
	ReasonRepetitive,
	ReasonTooShort,
	ReasonDuplicate,
	ReasonCorrection,
	ReasonTargetReduction,
}

// Utterance is one transcript record as supplied by speech recognition or a subtitle file
type Utterance struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
}

// Segment is the per-utterance decision record carried through the pipeline.
// Keep only ever goes from true to false, and Reason is set by the layer that drops it.
type Segment struct {
	Index      int     `json:"index"`
	StartSec   float64 `json:"start_sec"`
	EndSec     float64 `json:"end_sec"`
	Text       string  `json:"text"`
	Keep       bool    `json:"keep"`
	Reason     Reason  `json:"reason,omitempty"`
	Importance int     `json:"importance"`
	Speed      float64 `json:"speed"`
}

// Duration is the source-time length of the segment
func (s *Segment) Duration() float64 {
	return s.EndSec - s.StartSec
}

func (s *Segment) drop(reason Reason) {
	s.Keep = false
	s.Reason = reason
	s.Importance = 0
}

// MergedSegment is a contiguous, single-speed span of kept segments ready for rendering
type MergedSegment struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Text     string  `json:"text"`
	Speed    float64 `json:"speed"`
	Indices  []int   `json:"indices"`
}

// OutputDuration is the playback length of the chunk after speed-up
func (m MergedSegment) OutputDuration() float64 {
	if m.Speed <= 0 {
		return m.EndSec - m.StartSec
	}
	return (m.EndSec - m.StartSec) / m.Speed
}

func newSegments(utts []Utterance) []Segment {
	segs := make([]Segment, len(utts))
	for i, u := range utts {
		segs[i] = Segment{
			Index:    i,
			StartSec: u.StartSec,
			EndSec:   u.EndSec,
			Text:     u.Text,
			Keep:     true,
			Speed:    1.0,
		}
	}
	return segs
}

// textLen counts runes of the trimmed text
func textLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
