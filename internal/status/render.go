package status

import (
	"fmt"
	"html"

	"github.com/fatih/color"

	"perc/internal/config"
)

// Renderer turns a Snippet into a printable line.
type Renderer interface {
	Render(s Snippet) string
}

// Pango renders snippets as pango markup spans for the status bar.
type Pango struct {
	cfg *config.Config
}

// NewPango returns a markup renderer resolving palette names through cfg.
func NewPango(cfg *config.Config) *Pango {
	return &Pango{cfg: cfg}
}

func (p *Pango) Render(s Snippet) string {
	out := p.span(s.LabelColor, s.Label)
	if s.ValueColor != "" {
		return out + p.span(s.ValueColor, s.Value)
	}
	return out + html.EscapeString(s.Value)
}

func (p *Pango) span(name, text string) string {
	return fmt.Sprintf("<span color='%s'>%s</span>", p.cfg.Color(name), html.EscapeString(text))
}

// Term renders snippets with ANSI colors for interactive use.
type Term struct{}

// termColors maps palette names onto the nearest terminal attribute.
var termColors = map[string]color.Attribute{
	"black":  color.FgBlack,
	"blue":   color.FgBlue,
	"white":  color.FgWhite,
	"green":  color.FgGreen,
	"red":    color.FgRed,
	"yellow": color.FgHiYellow,
	"grey":   color.FgHiBlack,
	"gold":   color.FgYellow,
}

func (Term) Render(s Snippet) string {
	return paint(s.LabelColor, s.Label) + paint(s.ValueColor, s.Value)
}

func paint(name, text string) string {
	attr, ok := termColors[name]
	if !ok || text == "" {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}
