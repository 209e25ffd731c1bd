package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseSRT reads SRT cues. WebVTT input is accepted too: blocks without a
// "-->" timing line (headers, notes) are skipped. Multi-line cue text is
// joined with a space and a cue may have no text at all.
func ParseSRT(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cues []Cue
	var block []string
	lineNo := 0

	flush := func() error {
		defer func() { block = block[:0] }()
		if len(block) == 0 {
			return nil
		}

		timing := -1
		for i, l := range block {
			if strings.Contains(l, "-->") {
				timing = i
				break
			}
		}
		if timing < 0 {
			return nil
		}

		start, end, err := parseTiming(block[timing])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		text := make([]string, 0, len(block)-timing-1)
		for _, l := range block[timing+1:] {
			if t := strings.TrimSpace(l); t != "" {
				text = append(text, t)
			}
		}

		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: start,
			End:   end,
			Text:  strings.Join(text, " "),
		})
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return cues, nil
}

func parseTiming(line string) (float64, float64, error) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line: %q", line)
	}

	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}

	// VTT cue settings follow the end timestamp
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line: %q", line)
	}
	end, err := ParseTimestamp(endFields[0])
	if err != nil {
		return 0, 0, err
	}

	return start, end, nil
}

// WriteSRT writes cues in SRT format, numbering them from 1
func WriteSRT(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	for i, c := range cues {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimestamp(c.Start), FormatTimestamp(c.End), c.Text); err != nil {
			return fmt.Errorf("write cue %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}
