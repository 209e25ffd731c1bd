package lexicon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsFiller(t *testing.T) {
	m := Compile(Default())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"single english filler", "um", true},
		{"case insensitive", "Uh", true},
		{"punctuated filler", "Um,", true},
		{"filler run", "um uh yeah", true},
		{"multi word filler", "you know", true},
		{"repeated chinese filler", "嗯嗯嗯", true},
		{"repeated two-rune filler", "那个那个那个", true},
		{"space separated chinese fillers", "嗯 那个 就是", true},
		{"content", "this is the key implementation method", false},
		{"filler then content", "um the cache layer", false},
		{"empty", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsFiller(tt.text); got != tt.want {
				t.Errorf("IsFiller(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsQuestion(t *testing.T) {
	m := Compile(Default())

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"question mark", "is this cached?", true},
		{"fullwidth question mark", "这个对吗？", true},
		{"interrogative opener", "How does the cache work", true},
		{"chinese opener", "为什么要这样设计", true},
		{"word boundary", "however it works", false},
		{"statement", "the cache works", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.IsQuestion(tt.text); got != tt.want {
				t.Errorf("IsQuestion(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestKeywordAndCorrection(t *testing.T) {
	m := Compile(Default())

	if !m.HasKeyword("This is the KEY point") {
		t.Error("HasKeyword() should match case-insensitively")
	}
	if m.HasKeyword("nothing to see") {
		t.Error("HasKeyword() matched plain text")
	}
	if !m.HasCorrection("no wait, five") {
		t.Error("HasCorrection() should match marker")
	}
	if !m.HasCorrection("不对") {
		t.Error("HasCorrection() should match chinese marker")
	}
}

func TestEmptyLexiconNeverMatches(t *testing.T) {
	for _, m := range []*Matcher{Compile(nil), Compile(&Lexicon{})} {
		if m.IsFiller("um") || m.HasKeyword("key") || m.HasCorrection("no wait") {
			t.Error("empty lexicon should never match")
		}
		if m.IsQuestion("why") {
			t.Error("IsQuestion() matched opener with no interrogatives")
		}
		if !m.IsQuestion("why?") {
			t.Error("IsQuestion() should still honour the question mark")
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := `
fillers: ["euh", "ben"]
keywords: ["donc"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	lex, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(lex.Fillers) != 2 || lex.Keywords[0] != "donc" {
		t.Errorf("Load() = %+v", lex)
	}
	if len(lex.Corrections) != 0 {
		t.Errorf("Corrections = %v, want empty", lex.Corrections)
	}

	if !Compile(lex).IsFiller("euh ben") {
		t.Error("loaded fillers should match")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	if _, err := Load("nonexistent.yaml"); err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
