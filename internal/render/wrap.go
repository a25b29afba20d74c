package render

import (
	"strings"

	"github.com/fogleman/gg"
)

// WrapText breaks text into lines no wider than maxWidth, measured with the
// font face currently set on dc. Breaks happen only at word boundaries; a
// single word wider than maxWidth gets a line of its own rather than being
// split.
// PRE: dc has a font face set
// POST: Joining the lines with spaces reproduces the words of text in order
func WrapText(dc *gg.Context, text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
