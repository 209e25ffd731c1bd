package smartcut

import "testing"

func segmentsOf(texts ...string) []Segment {
	return newSegments(contiguous(texts, 1))
}

func TestScoreImportance(t *testing.T) {
	e := newTestEngine(t, nil)

	filler := "ŁŃŅŇŊŌ"
	middle := func(prev, text string) ([]Segment, int) {
		texts := make([]string, 20)
		for i := range texts {
			texts[i] = filler
		}
		texts[9] = prev
		texts[10] = text
		return segmentsOf(texts...), 10
	}

	tests := []struct {
		name string
		prev string
		text string
		want int
	}{
		{
			name: "long keyword text, novel",
			prev: filler,
			text: "this is the key implementation method",
			want: 5 + 3 + 1 + 1,
		},
		{
			name: "very short, repeats previous",
			prev: "ab",
			text: "ab",
			want: 5 - 2,
		},
		{
			name: "medium question, repeats previous",
			prev: "how does the cache layer work",
			text: "how does the cache layer work",
			want: 5 + 2 + 1,
		},
		{
			name: "nine runes, novel",
			prev: filler,
			text: "abcdefghi",
			want: 5 + 1 + 1,
		},
		{
			name: "sixteen runes, not novel",
			prev: "abcdefghijklmnop",
			text: "abcdefghijklmnop",
			want: 5 + 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, i := middle(tt.prev, tt.text)
			if got := e.scoreImportance(segs, i); got != tt.want {
				t.Errorf("scoreImportance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreImportancePosition(t *testing.T) {
	e := newTestEngine(t, nil)
	texts := make([]string, 20)
	for i := range texts {
		texts[i] = "abcdefgh"
	}
	segs := segmentsOf(texts...)

	tests := []struct {
		index int
		want  int
	}{
		{0, 6},  // first 10%, no predecessor
		{1, 6},  // first 10%, same as predecessor
		{2, 5},  // middle
		{18, 5}, // 18 is not beyond 90% of 20
		{19, 6}, // last 10%
	}

	for _, tt := range tests {
		if got := e.scoreImportance(segs, tt.index); got != tt.want {
			t.Errorf("scoreImportance(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestScoreImportanceClamp(t *testing.T) {
	e := newTestEngine(t, nil)
	segs := segmentsOf("why is this the key architecture decision we made here?")

	if got := e.scoreImportance(segs, 0); got != maxImportance {
		t.Errorf("scoreImportance() = %d, want %d", got, maxImportance)
	}
}

func TestScoreImportanceCustomKeywords(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.Lexicon.Keywords = []string{"zebra"}
	})
	texts := []string{"ŁŃŅŇŊŌ", "ŁŃŅŇŊŌ", "a zebra", "ŁŃŅŇŊŌ", "ŁŃŅŇŊŌ"}
	texts = append(texts, texts...)
	segs := segmentsOf(texts...)

	// 7 runes, keyword, novel
	if got := e.scoreImportance(segs, 2); got != 7 {
		t.Errorf("scoreImportance() = %d, want 7", got)
	}
}
