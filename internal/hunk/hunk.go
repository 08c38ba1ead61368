package hunk

import (
	"strings"

	"github.com/codalotl/retransdiff/internal/diff"
)

// Hunk is one localized change: the Removed segments of a run followed by its Added segments. At most one of Removed and Added is empty.
type Hunk struct {
	Index   int            `json:"index"`
	Removed []diff.Segment `json:"removed"`
	Added   []diff.Segment `json:"added"`
}

// RemovedText is the original wording of h.
func (h Hunk) RemovedText() string {
	return joinSegments(h.Removed)
}

// AddedText is the new wording of h.
func (h Hunk) AddedText() string {
	return joinSegments(h.Added)
}

// Op labels h as "replace", "delete" (nothing added), or "insert" (nothing removed).
func (h Hunk) Op() string {
	switch {
	case len(h.Removed) > 0 && len(h.Added) > 0:
		return "replace"
	case len(h.Removed) > 0:
		return "delete"
	default:
		return "insert"
	}
}

func joinSegments(segs []diff.Segment) string {
	switch len(segs) {
	case 0:
		return ""
	case 1:
		return segs[0].Text
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// ElementKind discriminates Element.
type ElementKind int

const (
	ElementEqual ElementKind = iota // Unchanged span; Text is set.
	ElementHunk                     // Change; Hunk is set.
)

func (k ElementKind) String() string {
	if k == ElementHunk {
		return "hunk"
	}
	return "equal"
}

// MarshalText serializes ElementKind as "equal" or "hunk".
func (k ElementKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Element is either an unchanged span (ElementEqual, with Text) or a hunk reference (ElementHunk, with Hunk).
type Element struct {
	Kind ElementKind `json:"kind"`
	Text string      `json:"text,omitempty"`
	Hunk *Hunk       `json:"hunk,omitempty"`
}

// Equal returns an ElementEqual element.
func Equal(text string) Element {
	return Element{Kind: ElementEqual, Text: text}
}

// Ref returns an ElementHunk element for h.
func Ref(h Hunk) Element {
	return Element{Kind: ElementHunk, Hunk: &h}
}

// GroupIntoElements regroups segments, in order and without loss, into Equal elements and numbered hunks.
//
// Each Equal segment becomes its own Equal element; consecutive Equal segments are not merged. A non-equal run is consumed as a maximal run of Removed segments followed by a maximal
// run of Added segments, and becomes one hunk. A run that starts with Added therefore yields a pure insertion, and Removed segments that follow Added ones start a new hunk. An empty
// input yields nil.
func GroupIntoElements(segments []diff.Segment) []Element {
	var elements []Element
	next := 0
	for i := 0; i < len(segments); {
		if segments[i].Kind == diff.KindEqual {
			elements = append(elements, Equal(segments[i].Text))
			i++
			continue
		}

		var removed, added []diff.Segment
		for i < len(segments) && segments[i].Kind == diff.KindRemoved {
			removed = append(removed, segments[i])
			i++
		}
		for i < len(segments) && segments[i].Kind == diff.KindAdded {
			added = append(added, segments[i])
			i++
		}
		if len(removed) == 0 && len(added) == 0 {
			// Unknown kind: skip it so the scan always advances.
			i++
			continue
		}

		elements = append(elements, Ref(Hunk{Index: next, Removed: nonNil(removed), Added: nonNil(added)}))
		next++
	}
	return elements
}

func nonNil(segs []diff.Segment) []diff.Segment {
	if segs == nil {
		return []diff.Segment{}
	}
	return segs
}

// RebuildText concatenates elements, taking each hunk's Removed text if its index is in reverted and its Added text otherwise. Indices in reverted that match no hunk are ignored.
func RebuildText(elements []Element, reverted RevertSet) string {
	var b strings.Builder
	for _, el := range elements {
		switch el.Kind {
		case ElementEqual:
			b.WriteString(el.Text)
		case ElementHunk:
			if el.Hunk == nil {
				continue
			}
			segs := el.Hunk.Added
			if reverted.Has(el.Hunk.Index) {
				segs = el.Hunk.Removed
			}
			for _, s := range segs {
				b.WriteString(s.Text)
			}
		}
	}
	return b.String()
}

// Hunks returns the hunks in elements, in order.
func Hunks(elements []Element) []Hunk {
	var out []Hunk
	for _, el := range elements {
		if el.Kind == ElementHunk && el.Hunk != nil {
			out = append(out, *el.Hunk)
		}
	}
	return out
}

// Count returns the number of hunks in elements.
func Count(elements []Element) int {
	n := 0
	for _, el := range elements {
		if el.Kind == ElementHunk && el.Hunk != nil {
			n++
		}
	}
	return n
}
