package diff

import (
	"strings"

	"github.com/codalotl/retransdiff/internal/segmenter"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ComputeDiff diffs original against retranslated, comparing at the granularity segmenter picks for lang. It never fails: any two strings and any language code (known or not) are
// accepted.
func ComputeDiff(original, retranslated, lang string) []Segment {
	return ComputeDiffGranularity(original, retranslated, segmenter.GranularityFor(lang))
}

// ComputeDiffGranularity diffs original against retranslated at granularity g.
func ComputeDiffGranularity(original, retranslated string, g segmenter.Granularity) []Segment {
	if original == retranslated {
		if original == "" {
			return nil
		}
		return []Segment{{Text: original, Kind: KindEqual}}
	}

	var table tokenTable
	a, okA := table.encode(segmenter.Tokenize(original, g))
	b, okB := table.encode(segmenter.Tokenize(retranslated, g))
	if !okA || !okB {
		// More distinct tokens than runes to intern them as. Degrade to a whole-text replacement, which still satisfies every invariant.
		return normalize([]Segment{
			{Text: original, Kind: KindRemoved},
			{Text: retranslated, Kind: KindAdded},
		})
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // No deadline: results must not depend on machine speed.
	diffs := dmp.DiffMainRunes(a, b, false)

	segments := make([]Segment, 0, len(diffs))
	for _, d := range diffs {
		text := table.decode(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			segments = append(segments, Segment{Text: text, Kind: KindEqual})
		case diffmatchpatch.DiffDelete:
			segments = append(segments, Segment{Text: text, Kind: KindRemoved})
		case diffmatchpatch.DiffInsert:
			segments = append(segments, Segment{Text: text, Kind: KindAdded})
		}
	}
	return normalize(segments)
}

// normalize drops empty segments, merges adjacent equals, and collapses every run of non-equal segments into at most one Removed followed by at most one Added.
func normalize(segments []Segment) []Segment {
	var out []Segment
	for i := 0; i < len(segments); {
		s := segments[i]
		if s.Kind == KindEqual {
			if s.Text != "" {
				if len(out) > 0 && out[len(out)-1].Kind == KindEqual {
					out[len(out)-1].Text += s.Text
				} else {
					out = append(out, s)
				}
			}
			i++
			continue
		}

		// Collect a run of non-equal segments until the next equal or the end.
		var removed, added strings.Builder
		for ; i < len(segments) && segments[i].Kind != KindEqual; i++ {
			switch segments[i].Kind {
			case KindRemoved:
				removed.WriteString(segments[i].Text)
			case KindAdded:
				added.WriteString(segments[i].Text)
			}
		}
		if removed.Len() > 0 {
			out = append(out, Segment{Text: removed.String(), Kind: KindRemoved})
		}
		if added.Len() > 0 {
			out = append(out, Segment{Text: added.String(), Kind: KindAdded})
		}
	}
	return out
}

// maxTokenIDs is how many distinct tokens fit in valid Unicode scalar values once the surrogate block is skipped.
const maxTokenIDs = 0x10FFFF + 1 - (0xDFFF - 0xD800 + 1)

// tokenTable interns tokens as runes, so diffmatchpatch can align token sequences the same way it aligns lines in DiffLinesToRunes. IDs avoid the surrogate block: diffmatchpatch
// round-trips runes through strings, which would turn surrogates into U+FFFD.
type tokenTable struct {
	ids    map[string]rune
	tokens []string
}

func (t *tokenTable) encode(tokens []string) ([]rune, bool) {
	if t.ids == nil {
		t.ids = make(map[string]rune)
	}
	out := make([]rune, 0, len(tokens))
	for _, tok := range tokens {
		id, ok := t.ids[tok]
		if !ok {
			if len(t.tokens) >= maxTokenIDs {
				return nil, false
			}
			id = idToRune(len(t.tokens))
			t.ids[tok] = id
			t.tokens = append(t.tokens, tok)
		}
		out = append(out, id)
	}
	return out, true
}

func (t *tokenTable) decode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if idx := runeToID(r); idx >= 0 && idx < len(t.tokens) {
			b.WriteString(t.tokens[idx])
		}
	}
	return b.String()
}

func idToRune(id int) rune {
	if id >= 0xD800 {
		id += 0xDFFF - 0xD800 + 1
	}
	return rune(id)
}

func runeToID(r rune) int {
	id := int(r)
	if id > 0xDFFF {
		id -= 0xDFFF - 0xD800 + 1
	}
	return id
}
