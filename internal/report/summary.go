package report

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

// minSummaryLen keeps one-word acknowledgements out of the highlights
const minSummaryLen = 5

// Summary returns up to n kept segments ordered by importance, highest first.
// Ties keep transcript order.
func Summary(segs []smartcut.Segment, n int) []smartcut.Segment {
	top := make([]smartcut.Segment, 0, len(segs))
	for _, s := range segs {
		if s.Keep && utf8.RuneCountInString(strings.TrimSpace(s.Text)) > minSummaryLen {
			top = append(top, s)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Importance > top[j].Importance
	})

	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}
