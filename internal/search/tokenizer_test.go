package search

import (
	"strings"
	"testing"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "whitespace only", input: "   \t\n", expected: nil},
		{name: "lowercases and dedups", input: "Hello World hello", expected: []string{"hello", "world"}},
		{name: "dotted name", input: "st.text_input", expected: []string{"st", "text_input"}},
		{name: "digits", input: "h1 h2 2024", expected: []string{"h1", "h2", "2024"}},
		{name: "two character kanji", input: "入力", expected: []string{"入力"}},
		{
			name:     "katakana and kanji run",
			input:    "テキスト入力",
			expected: []string{"テキスト入力", "テキ", "キス", "スト", "ト入", "入力"},
		},
		{
			name:  "long vowel mark splits script runs",
			input: "データ表示",
			// ー is a letter for the word pass but outside the script ranges.
			expected: []string{"データ表示", "デ", "タ表示", "タ表", "表示"},
		},
		{
			name:     "mixed latin and japanese",
			input:    "Chart グラフ",
			expected: []string{"chart", "グラフ", "グラ", "ラフ"},
		},
		{name: "punctuation only", input: "!?.,", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	first := Tokenize("複数行のテキスト入力エリア")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Tokenize("複数行のテキスト入力エリア"))
	}
}

func TestTokenize_HighlightsKeepFieldTokens(t *testing.T) {
	e := newFixtureEngine(t)

	for _, q := range []string{"chart", "入力", "st.c", "text"} {
		t.Run(q, func(t *testing.T) {
			results := e.Search(q)
			require.NotEmpty(t, results)

			for _, r := range results {
				fields := map[string]string{
					domain.FieldName:        r.Name,
					domain.FieldDescription: r.Description,
				}
				for field, marked := range r.Highlights {
					plain := strings.ReplaceAll(marked, highlightMarker, "")
					assert.Equal(t, fields[field], plain, "%s.%s", r.ComponentID, field)
					assert.Subset(t, Tokenize(fields[field]), Tokenize(plain), "%s.%s", r.ComponentID, field)
				}
			}
		})
	}
}
