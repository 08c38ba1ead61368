package diff

import "strings"

// ANSI colors shared by the renderers in this package and package hunk.
const (
	ColorReset     = "\x1b[0m"
	ColorBlackFG   = "\x1b[30m"
	ColorPinkSpan  = "\x1b[48;5;217m" // removed text
	ColorGreenSpan = "\x1b[48;5;114m" // added text
	ColorCyanBold  = "\x1b[1;36m"
	ColorDim       = "\x1b[2m"
)

// Plain-text markers used when color is off. They follow the wdiff convention.
const (
	removedOpen  = "[-"
	removedClose = "-]"
	addedOpen    = "{+"
	addedClose   = "+}"
)

// RenderInline renders segments as a single inline text: equal text verbatim, removed text then added text for each change.
//
// Without color, removed text is wrapped as [-text-] and added text as {+text+}. With color, removed text gets a pink background and added text a green one (ANSI 256-color); the
// output is then intended for terminals only.
func RenderInline(segments []Segment, color bool) string {
	var b strings.Builder
	for _, s := range segments {
		switch s.Kind {
		case KindEqual:
			b.WriteString(s.Text)
		case KindRemoved:
			WriteRemoved(&b, s.Text, color)
		case KindAdded:
			WriteAdded(&b, s.Text, color)
		}
	}
	return b.String()
}

// WriteRemoved writes text marked as removed to b.
func WriteRemoved(b *strings.Builder, text string, color bool) {
	if color {
		b.WriteString(ColorBlackFG + ColorPinkSpan)
		b.WriteString(text)
		b.WriteString(ColorReset)
		return
	}
	b.WriteString(removedOpen)
	b.WriteString(text)
	b.WriteString(removedClose)
}

// WriteAdded writes text marked as added to b.
func WriteAdded(b *strings.Builder, text string, color bool) {
	if color {
		b.WriteString(ColorBlackFG + ColorGreenSpan)
		b.WriteString(text)
		b.WriteString(ColorReset)
		return
	}
	b.WriteString(addedOpen)
	b.WriteString(text)
	b.WriteString(addedClose)
}
