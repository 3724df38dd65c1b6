package cli

import (
	"bytes"
	"testing"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_Formats(t *testing.T) {
	for _, format := range []string{"", FormatText, FormatJSON} {
		_, err := NewRenderer(&bytes.Buffer{}, format)
		assert.NoError(t, err, format)
	}

	_, err := NewRenderer(&bytes.Buffer{}, "yaml")
	assert.Error(t, err)
}

func TestRenderer_Emphasize(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, FormatText)
	require.NoError(t, err)

	tests := []struct {
		in       string
		expected string
	}{
		{"st.**text**_input", "st.text_input"},
		{"**a** and **b**", "a and b"},
		{"plain", "plain"},
		{"unbalanced **marker", "unbalanced marker"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.emphasize(tt.in, r.styles.Title))
		})
	}
}

func TestRenderer_SearchResultsUsesHighlights(t *testing.T) {
	var buf bytes.Buffer
	r, err := NewRenderer(&buf, FormatText)
	require.NoError(t, err)

	err = r.SearchResults("text", []domain.SearchResult{{
		ComponentID:   "text_input",
		Name:          "st.text_input",
		Category:      "input_widgets",
		Description:   "Single line text",
		Score:         0.51234,
		MatchedFields: []string{domain.FieldName},
		Highlights:    map[string]string{domain.FieldDescription: "Single line **text**"},
	}})
	require.NoError(t, err)

	assert.Equal(t,
		"1. st.text_input (text_input)  [input_widgets]  score 0.5123\n"+
			"   Single line text\n"+
			"   matched: name\n",
		buf.String())
}

func TestStylesFor_NonTerminal(t *testing.T) {
	styles := StylesFor(&bytes.Buffer{})

	assert.Equal(t, "x", styles.Highlight.Render("x"))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}
