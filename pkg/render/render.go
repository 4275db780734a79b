// Package render presents built citations for display: as HTML, as plain
// text, or as styled terminal output using the configured theme.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CutieJi/citation-generator/pkg/citation"
	"github.com/CutieJi/citation-generator/pkg/config"
)

// palette holds the colours used for one theme.
type palette struct {
	heading lipgloss.Color
	body    lipgloss.Color
	err     lipgloss.Color
	dim     lipgloss.Color
}

var palettes = map[config.Theme]palette{
	config.ThemeLight: {
		heading: lipgloss.Color("#1D4ED8"),
		body:    lipgloss.Color("#111827"),
		err:     lipgloss.Color("#B91C1C"),
		dim:     lipgloss.Color("#6B7280"),
	},
	config.ThemeDark: {
		heading: lipgloss.Color("#4ECDC4"),
		body:    lipgloss.Color("#F1F5F9"),
		err:     lipgloss.Color("#FF6B6B"),
		dim:     lipgloss.Color("#6C757D"),
	},
}

// Renderer formats citations for one output kind and theme.
type Renderer struct {
	output config.Output

	headingStyle lipgloss.Style
	bodyStyle    lipgloss.Style
	italicStyle  lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
}

// New returns a Renderer. Unknown themes fall back to light.
func New(output config.Output, theme config.Theme) *Renderer {
	colours, ok := palettes[theme]
	if !ok {
		colours = palettes[config.ThemeLight]
	}

	body := lipgloss.NewStyle().Foreground(colours.body)
	return &Renderer{
		output:       output,
		headingStyle: lipgloss.NewStyle().Bold(true).Foreground(colours.heading),
		bodyStyle:    body,
		italicStyle:  body.Italic(true),
		errorStyle:   lipgloss.NewStyle().Bold(true).Foreground(colours.err),
		dimStyle:     lipgloss.NewStyle().Foreground(colours.dim),
	}
}

// Citation renders text built in style, preceded by its heading.
func (r *Renderer) Citation(style citation.Style, text string) string {
	heading := citation.Heading(style)
	switch r.output {
	case config.OutputHTML:
		return fmt.Sprintf("<strong>%s</strong><br>%s", heading, text)
	case config.OutputText:
		return heading + "\n" + citation.StripMarkup(text)
	default:
		return r.headingStyle.Render(heading) + "\n" + r.body(text)
	}
}

// Plain renders text with no heading, for the clipboard or piping.
func (r *Renderer) Plain(text string) string {
	if r.output == config.OutputHTML {
		return text
	}
	return citation.StripMarkup(text)
}

func (r *Renderer) body(text string) string {
	var b strings.Builder
	for _, segment := range citation.Segments(text) {
		if segment.Italic {
			b.WriteString(r.italicStyle.Render(segment.Text))
		} else {
			b.WriteString(r.bodyStyle.Render(segment.Text))
		}
	}
	return b.String()
}

// Error renders a failure for the user. Validation errors list the
// offending fields.
func (r *Renderer) Error(err error) string {
	message := err.Error()
	var validationErr *citation.ValidationError
	if errors.As(err, &validationErr) && validationErr.Kind == citation.KindMissingRequiredField {
		message = "Please fill in all required fields (" + strings.Join(validationErr.Fields, ", ") + ")"
	}

	switch r.output {
	case config.OutputHTML:
		return "<strong>Error:</strong> " + message
	case config.OutputText:
		return "Error: " + message
	default:
		return r.errorStyle.Render("Error:") + " " + message
	}
}

// Note renders secondary information such as "copied to clipboard".
func (r *Renderer) Note(text string) string {
	if r.output == config.OutputANSI {
		return r.dimStyle.Render(text)
	}
	return text
}
