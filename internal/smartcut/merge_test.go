package smartcut

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		name string
		segs []Segment
		want []MergedSegment
	}{
		{
			name: "small gap merges, large gap splits",
			segs: []Segment{
				{Index: 0, StartSec: 0, EndSec: 1, Text: "one", Keep: true, Speed: 1},
				{Index: 1, StartSec: 1.2, EndSec: 2, Text: "two", Keep: true, Speed: 1},
				{Index: 2, StartSec: 2.5, EndSec: 3, Text: "three", Keep: true, Speed: 1},
			},
			want: []MergedSegment{
				{StartSec: 0, EndSec: 2, Text: "one two", Speed: 1, Indices: []int{0, 1}},
				{StartSec: 2.5, EndSec: 3, Text: "three", Speed: 1, Indices: []int{2}},
			},
		},
		{
			name: "speed shrinks the gap",
			segs: []Segment{
				{Index: 0, StartSec: 0, EndSec: 1, Text: "one", Keep: true, Speed: 1.5},
				{Index: 1, StartSec: 1.4, EndSec: 2, Text: "two", Keep: true, Speed: 1.5},
			},
			want: []MergedSegment{
				{StartSec: 0, EndSec: 2, Text: "one two", Speed: 1.5, Indices: []int{0, 1}},
			},
		},
		{
			name: "different speeds never merge",
			segs: []Segment{
				{Index: 0, StartSec: 0, EndSec: 1, Text: "one", Keep: true, Speed: 1},
				{Index: 1, StartSec: 1, EndSec: 2, Text: "two", Keep: true, Speed: 1.25},
			},
			want: []MergedSegment{
				{StartSec: 0, EndSec: 1, Text: "one", Speed: 1, Indices: []int{0}},
				{StartSec: 1, EndSec: 2, Text: "two", Speed: 1.25, Indices: []int{1}},
			},
		},
		{
			name: "dropped segments are skipped",
			segs: []Segment{
				{Index: 0, StartSec: 0, EndSec: 1, Text: "one", Keep: true, Speed: 1},
				{Index: 1, StartSec: 1, EndSec: 5, Text: "um", Keep: false, Reason: ReasonFiller, Speed: 1},
				{Index: 2, StartSec: 5, EndSec: 6, Text: "two", Keep: true, Speed: 1},
			},
			want: []MergedSegment{
				{StartSec: 0, EndSec: 1, Text: "one", Speed: 1, Indices: []int{0}},
				{StartSec: 5, EndSec: 6, Text: "two", Speed: 1, Indices: []int{2}},
			},
		},
		{
			name: "overlap keeps the later end",
			segs: []Segment{
				{Index: 0, StartSec: 0, EndSec: 3, Text: "long", Keep: true, Speed: 1},
				{Index: 1, StartSec: 1, EndSec: 2, Text: "inner", Keep: true, Speed: 1},
			},
			want: []MergedSegment{
				{StartSec: 0, EndSec: 3, Text: "long inner", Speed: 1, Indices: []int{0, 1}},
			},
		},
		{
			name: "nothing kept",
			segs: []Segment{
				{Index: 0, StartSec: 0, EndSec: 1, Text: "um", Keep: false, Reason: ReasonFiller, Speed: 1},
			},
			want: []MergedSegment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.merge(tt.segs)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMergeCustomGap(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.MaxGap = 1 })
	segs := []Segment{
		{Index: 0, StartSec: 0, EndSec: 1, Text: "one", Keep: true, Speed: 1},
		{Index: 1, StartSec: 1.9, EndSec: 2, Text: "two", Keep: true, Speed: 1},
	}

	if got := e.merge(segs); len(got) != 1 {
		t.Errorf("len(merge()) = %d, want 1", len(got))
	}
}

func TestMergedOutputDuration(t *testing.T) {
	m := MergedSegment{StartSec: 10, EndSec: 13, Speed: 1.5}
	if got := m.OutputDuration(); got != 2 {
		t.Errorf("OutputDuration() = %v, want 2", got)
	}
}
