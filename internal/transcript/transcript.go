// Package transcript reads and writes the subtitle and ASR formats the cutter
// consumes and produces.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

// Cue is one timed line of a transcript
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// SupportedExtensions lists the transcript file types Load understands
var SupportedExtensions = []string{".srt", ".vtt", ".json"}

// IsTranscriptFile checks whether path has a supported transcript extension
func IsTranscriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads a transcript file, choosing the parser from its extension
func Load(path string) ([]Cue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt", ".vtt":
		return ParseSRT(f)
	case ".json":
		return ParseWhisperX(f)
	default:
		return nil, fmt.Errorf("unsupported transcript format: %s", filepath.Ext(path))
	}
}

// ToUtterances converts cues into engine input, preserving order
func ToUtterances(cues []Cue) []smartcut.Utterance {
	utts := make([]smartcut.Utterance, len(cues))
	for i, c := range cues {
		utts[i] = smartcut.Utterance{StartSec: c.Start, EndSec: c.End, Text: c.Text}
	}
	return utts
}

// Retime lays the merged chunks end to end on the output timeline. Each chunk
// lasts its source span divided by its playback speed.
func Retime(merged []smartcut.MergedSegment) []Cue {
	cues := make([]Cue, len(merged))
	cursor := 0.0
	for i, m := range merged {
		dur := m.OutputDuration()
		cues[i] = Cue{
			Index: i + 1,
			Start: cursor,
			End:   cursor + dur,
			Text:  m.Text,
		}
		cursor += dur
	}
	return cues
}
