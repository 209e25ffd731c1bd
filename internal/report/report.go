// Package report persists the outcome of a smart-cut run: the JSON result
// consumed by the renderer, a readable .docx of the kept transcript and a
// short summary of the strongest segments.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
)

const (
	ModeSpeedFirst = "speed_first"
	ModeCutOnly    = "cut_only"
)

// Report is the persisted form of one run
type Report struct {
	Source    string                   `json:"source"`
	Hash      string                   `json:"hash,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	Mode      string                   `json:"mode"`
	Metrics   smartcut.Metrics         `json:"metrics"`
	Merged    []smartcut.MergedSegment `json:"merged"`
	Decisions []smartcut.Segment       `json:"decisions"`
}

// New wraps an engine result for the given source file
func New(source, hash string, res *smartcut.Result) *Report {
	return &Report{
		Source:    source,
		Hash:      hash,
		CreatedAt: time.Now().UTC(),
		Mode:      Mode(res.Metrics),
		Metrics:   res.Metrics,
		Merged:    res.Merged,
		Decisions: res.Segments,
	}
}

// Mode names the dominant strategy: speed_first whenever playback was sped up
func Mode(m smartcut.Metrics) string {
	if m.GlobalSpeed > 1.0 {
		return ModeSpeedFirst
	}
	return ModeCutOnly
}

// BaseName strips directory and extension from a source path
func BaseName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResultPath is where the JSON result of source is written inside dir
func ResultPath(dir, source string) string {
	return filepath.Join(dir, BaseName(source)+"_cut_result.json")
}

// SubtitlePath is where the re-timed subtitles of source are written inside dir
func SubtitlePath(dir, source string) string {
	return filepath.Join(dir, BaseName(source)+"_cut.srt")
}

// DocxPath is where the kept transcript document of source is written inside dir
func DocxPath(dir, source string) string {
	return filepath.Join(dir, BaseName(source)+"_cut.docx")
}

// WriteJSON encodes the report as indented JSON
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Save writes the report to path, creating parent directories as needed
func Save(path string, rep *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, rep); err != nil {
		return err
	}
	return f.Close()
}

// Read loads a report previously written by Save
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &rep, nil
}
