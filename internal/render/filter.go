package render

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

// BuildFilter returns the filter_complex graph that trims every chunk out of
// input 0, applies its playback speed and concatenates the pieces into [outv] and [outa].
func BuildFilter(chunks []smartcut.MergedSegment) string {
	var parts []string
	var concatV, concatA strings.Builder

	for i, c := range chunks {
		vpts := "setpts=PTS-STARTPTS"
		apts := "asetpts=PTS-STARTPTS"
		if c.Speed != 1.0 {
			vpts = fmt.Sprintf("setpts=(PTS-STARTPTS)/%.3f", c.Speed)
			apts += fmt.Sprintf(",atempo=%.3f", c.Speed)
		}

		parts = append(parts,
			fmt.Sprintf("[0:v]trim=start=%.3f:end=%.3f,%s[v%d]", c.StartSec, c.EndSec, vpts, i),
			fmt.Sprintf("[0:a]atrim=start=%.3f:end=%.3f,%s[a%d]", c.StartSec, c.EndSec, apts, i),
		)
		fmt.Fprintf(&concatV, "[v%d]", i)
		fmt.Fprintf(&concatA, "[a%d]", i)
	}

	n := len(chunks)
	parts = append(parts,
		fmt.Sprintf("%sconcat=n=%d:v=1:a=0[outv]", concatV.String(), n),
		fmt.Sprintf("%sconcat=n=%d:v=0:a=1[outa]", concatA.String(), n),
	)

	return strings.Join(parts, ";")
}

// batches splits chunks into runs of at most size
func batches(chunks []smartcut.MergedSegment, size int) [][]smartcut.MergedSegment {
	var out [][]smartcut.MergedSegment
	for start := 0; start < len(chunks); start += size {
		end := start + size
		if end > len(chunks) {
			end = len(chunks)
		}
		out = append(out, chunks[start:end])
	}
	return out
}

// ExpectedDuration is the playback length of the rendered chunks
func ExpectedDuration(chunks []smartcut.MergedSegment) float64 {
	var total float64
	for _, c := range chunks {
		total += c.OutputDuration()
	}
	return total
}
