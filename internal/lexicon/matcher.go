package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher is a compiled, case-insensitive view of a Lexicon
type Matcher struct {
	fillers        map[string]struct{}
	fillerList     []string
	keywords       []string
	interrogatives []string
	corrections    []string
}

// Compile lowercases and indexes the lexicon. A nil lexicon yields a Matcher
// that never matches.
func Compile(l *Lexicon) *Matcher {
	m := &Matcher{fillers: make(map[string]struct{})}
	if l == nil {
		return m
	}

	for _, f := range normalizeAll(l.Fillers) {
		m.fillers[f] = struct{}{}
		m.fillerList = append(m.fillerList, f)
	}
	m.keywords = normalizeAll(l.Keywords)
	m.interrogatives = normalizeAll(l.Interrogatives)
	m.corrections = normalizeAll(l.Corrections)
	return m
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// IsFiller reports whether text consists only of filler tokens. It accepts an
// exact filler, a space-separated run of fillers, or one filler repeated
// back to back ("嗯嗯嗯", "那个那个").
func (m *Matcher) IsFiller(text string) bool {
	if len(m.fillers) == 0 {
		return false
	}

	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	if _, ok := m.fillers[t]; ok {
		return true
	}
	if _, ok := m.fillers[trimPunct(t)]; ok {
		return true
	}

	words := make([]string, 0)
	for _, w := range strings.Fields(t) {
		if w = trimPunct(w); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return false
	}

	for _, w := range words {
		if _, ok := m.fillers[w]; ok {
			continue
		}
		if !m.isRepeatedFiller(w) {
			return false
		}
	}
	return true
}

func (m *Matcher) isRepeatedFiller(w string) bool {
	for _, f := range m.fillerList {
		if len(f) == 0 || len(w) <= len(f) || len(w)%len(f) != 0 {
			continue
		}
		if strings.Repeat(f, len(w)/len(f)) == w {
			return true
		}
	}
	return false
}

// HasKeyword reports whether text contains any keyword
func (m *Matcher) HasKeyword(text string) bool {
	return containsAny(strings.ToLower(text), m.keywords)
}

// HasCorrection reports whether text contains a false-start marker
func (m *Matcher) HasCorrection(text string) bool {
	return containsAny(strings.ToLower(text), m.corrections)
}

// IsQuestion reports whether text carries a question mark or opens with an interrogative
func (m *Matcher) IsQuestion(text string) bool {
	if strings.ContainsAny(text, "?？") {
		return true
	}

	t := strings.ToLower(strings.TrimSpace(text))
	for _, q := range m.interrogatives {
		if !strings.HasPrefix(t, q) {
			continue
		}
		// latin openers must end on a word boundary: "how" but not "however"
		last, _ := utf8.DecodeLastRuneInString(q)
		if last > unicode.MaxASCII || !unicode.IsLetter(last) {
			return true
		}
		next, _ := utf8.DecodeRuneInString(t[len(q):])
		if next == utf8.RuneError || !(unicode.IsLetter(next) || unicode.IsDigit(next)) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
