package report

import (
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/smart-cut/internal/smartcut"
	"github.com/nguyentantai21042004/smart-cut/internal/transcript"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx renders the kept transcript, one paragraph per merged chunk, as a .docx file
func WriteDocx(rep *Report, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), BaseName(rep.Source), true, 16)

	m := rep.Metrics
	addStyledRun(doc.AddParagraph(""), "Metrics", true, 14)
	addLine(doc, fmt.Sprintf("Original duration: %s", transcript.FormatTimestamp(m.OriginalDuration)))
	addLine(doc, fmt.Sprintf("Final duration: %s", transcript.FormatTimestamp(m.FinalDuration)))
	addLine(doc, fmt.Sprintf("Compression: %.1f%%", m.CompressionRatio*100))
	addLine(doc, fmt.Sprintf("Global speed: %.2fx (%s)", m.GlobalSpeed, rep.Mode))
	addLine(doc, fmt.Sprintf("Segments: %d total, %d kept, %d merged", m.TotalSegments, m.KeptSegments, m.MergedSegments))

	for _, reason := range smartcut.Reasons {
		if n := m.Removed[reason]; n > 0 {
			addLine(doc, fmt.Sprintf("Removed (%s): %d", reason, n))
		}
	}

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 14)
	for _, chunk := range rep.Merged {
		p := doc.AddParagraph("")
		stamp := fmt.Sprintf("[%s - %s] ", transcript.FormatTimestamp(chunk.StartSec), transcript.FormatTimestamp(chunk.EndSec))
		p.AddText(stamp).Font(fontName).Size(fontSize).Color("555555")
		if chunk.Speed != 1.0 {
			p.AddText(fmt.Sprintf("(x%.2f) ", chunk.Speed)).Font(fontName).Size(fontSize).Color("555555").Bold(true)
		}
		p.AddText(chunk.Text).Font(fontName).Size(fontSize).Color("000000")
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addLine(doc *docx.RootDoc, text string) {
	addStyledRun(doc.AddParagraph(""), text, false, fontSize)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
