package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
const (
	ColorAccent = "86"
	ColorHeader = "214"
	ColorGray   = "245"
	ColorDim    = "240"
	ColorRed    = "196"
)

// Styles holds the text styles used by the command output.
type Styles struct {
	Title     lipgloss.Style
	ID        lipgloss.Style
	Category  lipgloss.Style
	Score     lipgloss.Style
	Highlight lipgloss.Style
	Label     lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns coloured styles for terminal output.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader)),
		ID:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)),
		Category:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Score:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)),
		Highlight: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(ColorAccent)),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle(),
		ID:        lipgloss.NewStyle(),
		Category:  lipgloss.NewStyle(),
		Score:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle(),
		Dim:       lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
	}
}

// StylesFor picks coloured styles only when w is a terminal and NO_COLOR is unset.
func StylesFor(w io.Writer) Styles {
	if IsTTY(w) && !DetectNoColor() {
		return DefaultStyles()
	}
	return NoColorStyles()
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
