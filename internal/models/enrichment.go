package models

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
)

// Enrichment is the text-enrichment result as received from the AI backend.
// HasHighlights records whether the upstream response carried the field at all.
type Enrichment struct {
	ImagePrompt   string
	Caption       string
	Keywords      []string
	Highlights    []string
	HasHighlights bool
}

// Normalize trims every field, drops blanks, fills the optional highlights
// with an empty list and clamps the caption to its glyph budget.
func (e Enrichment) Normalize() Enrichment {
	out := Enrichment{
		ImagePrompt:   strings.TrimSpace(e.ImagePrompt),
		Caption:       TruncateGlyphs(strings.TrimSpace(e.Caption), constants.CaptionMaxGlyphs),
		Keywords:      compact(e.Keywords),
		Highlights:    []string{},
		HasHighlights: true,
	}
	if e.HasHighlights {
		out.Highlights = compact(e.Highlights)
	}
	return out
}

// TruncateGlyphs cuts s to at most n user-perceived characters
func TruncateGlyphs(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= n {
		return s
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	return b.String()
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
