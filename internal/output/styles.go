package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette holds the lipgloss styles used for text output
type Palette struct {
	Header  lipgloss.Style
	Domain  lipgloss.Style
	Key     lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Kept    lipgloss.Style
	Matched lipgloss.Style
	Skipped lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

// Styles is the palette used on terminals
var Styles = Palette{
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Domain:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),  // Blue
	Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("142")),            // Yellow-green
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),            // Gray
	Value:   lipgloss.NewStyle().Bold(true),
	Kept:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),             // Green
	Matched: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),            // Dim gray
	Skipped: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // Orange
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
}

// PlainStyles renders text unchanged
var PlainStyles = Palette{
	Header:  lipgloss.NewStyle(),
	Domain:  lipgloss.NewStyle(),
	Key:     lipgloss.NewStyle(),
	Label:   lipgloss.NewStyle(),
	Value:   lipgloss.NewStyle(),
	Kept:    lipgloss.NewStyle(),
	Matched: lipgloss.NewStyle(),
	Skipped: lipgloss.NewStyle(),
	Success: lipgloss.NewStyle(),
	Warning: lipgloss.NewStyle(),
	Danger:  lipgloss.NewStyle(),
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PaletteFor picks styled output for terminals and plain text otherwise.
func PaletteFor(w io.Writer) Palette {
	if IsTerminal(w) {
		return Styles
	}
	return PlainStyles
}
