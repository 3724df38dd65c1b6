package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sha1n/mcp-widget-catalog/internal/components"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// highlightMarker delimits matched text in result highlights.
const highlightMarker = "**"

// Renderer writes command results either as styled text or as JSON.
type Renderer struct {
	out    io.Writer
	styles Styles
	format string
}

// NewRenderer creates a renderer for the given output format.
func NewRenderer(out io.Writer, format string) (*Renderer, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON:
	default:
		return nil, fmt.Errorf("unknown output format %q (expected text or json)", format)
	}

	return &Renderer{
		out:    out,
		styles: StylesFor(out),
		format: format,
	}, nil
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// SearchResults renders ranked results.
func (r *Renderer) SearchResults(query string, results []domain.SearchResult) error {
	if r.format == FormatJSON {
		return r.json(results)
	}

	if len(results) == 0 {
		r.printf("%s\n", r.styles.Dim.Render("No components found for query: "+query))
		return nil
	}

	for i, res := range results {
		name := res.Name
		if hl, ok := res.Highlights[domain.FieldName]; ok {
			name = hl
		}
		r.printf("%d. %s %s  %s  %s\n",
			i+1,
			r.emphasize(name, r.styles.Title),
			r.styles.ID.Render("("+res.ComponentID+")"),
			r.styles.Category.Render("["+res.Category+"]"),
			r.styles.Score.Render("score "+formatScore(res.Score)),
		)

		description := res.Description
		if hl, ok := res.Highlights[domain.FieldDescription]; ok {
			description = hl
		}
		if description != "" {
			r.printf("   %s\n", r.emphasize(description, lipgloss.NewStyle()))
		}
		if len(res.MatchedFields) > 0 {
			r.printf("   %s %s\n", r.styles.Label.Render("matched:"), strings.Join(res.MatchedFields, ", "))
		}
	}
	return nil
}

// Names renders a plain list, one entry per line.
func (r *Renderer) Names(empty string, names []string) error {
	if r.format == FormatJSON {
		return r.json(names)
	}

	if len(names) == 0 {
		r.printf("%s\n", r.styles.Dim.Render(empty))
		return nil
	}
	for _, name := range names {
		r.printf("%s\n", r.styles.ID.Render(name))
	}
	return nil
}

// Components renders component records with their name and description.
func (r *Renderer) Components(empty string, list []domain.Component) error {
	if r.format == FormatJSON {
		return r.json(list)
	}

	if len(list) == 0 {
		r.printf("%s\n", r.styles.Dim.Render(empty))
		return nil
	}
	for _, c := range list {
		r.printf("%s %s  %s\n",
			r.styles.Title.Render(c.Name),
			r.styles.ID.Render("("+c.ID+")"),
			r.styles.Category.Render("["+c.Category+"]"),
		)
		if c.Description != "" {
			r.printf("   %s\n", c.Description)
		}
	}
	return nil
}

// Categories renders category summaries.
func (r *Renderer) Categories(list []components.CategorySummary) error {
	if r.format == FormatJSON {
		return r.json(list)
	}

	for _, c := range list {
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}
		r.printf("%s %s  %s\n",
			r.styles.Title.Render(label),
			r.styles.ID.Render("("+c.Key+")"),
			r.styles.Label.Render(strconv.Itoa(c.Count)+" components"),
		)
	}
	return nil
}

// emphasize renders highlighted spans of text with the highlight style and
// the remaining spans with base.
func (r *Renderer) emphasize(text string, base lipgloss.Style) string {
	parts := strings.Split(text, highlightMarker)
	if len(parts) < 3 {
		return base.Render(strings.ReplaceAll(text, highlightMarker, ""))
	}

	var sb strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		// Odd segments sit between an opening and a closing marker.
		if i%2 == 1 && i < len(parts)-1 {
			sb.WriteString(r.styles.Highlight.Render(part))
		} else {
			sb.WriteString(base.Render(part))
		}
	}
	return sb.String()
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return strconv.FormatInt(int64(score), 10)
	}
	return strconv.FormatFloat(score, 'f', 4, 64)
}
