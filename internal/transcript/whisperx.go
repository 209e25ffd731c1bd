package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	whisperResult struct {
		Segments []whisperSegment `json:"segments"`
	}

	whisperSegment struct {
		Text  string          `json:"text"`
		Start decimal.Decimal `json:"start"`
		End   decimal.Decimal `json:"end"`
	}
)

// ParseWhisperX reads the segment list of a whisperx (or whisper verbose_json)
// result. Times are rounded to the millisecond.
func ParseWhisperX(r io.Reader) ([]Cue, error) {
	var res whisperResult
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decoding whisperx json result: %w", err)
	}

	cues := make([]Cue, len(res.Segments))
	for n, s := range res.Segments {
		start, _ := s.Start.Round(3).Float64()
		end, _ := s.End.Round(3).Float64()
		cues[n] = Cue{
			Index: n + 1,
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(s.Text),
		}
	}
	return cues, nil
}
