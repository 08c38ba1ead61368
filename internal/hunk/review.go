package hunk

import "github.com/codalotl/retransdiff/internal/diff"

// Review holds the per-hunk keep/revert choices for one diff, the state a UI keeps behind its revert toggles. All hunks start kept. A Review is not safe for concurrent use.
type Review struct {
	elements []Element
	reverted RevertSet
	known    RevertSet // Every hunk index in elements.
}

// NewReview diffs original against retranslated for lang and starts a Review with every hunk kept.
func NewReview(original, retranslated, lang string) *Review {
	return NewReviewFromElements(GroupIntoElements(diff.ComputeDiff(original, retranslated, lang)))
}

// NewReviewFromElements starts a Review over already grouped elements.
func NewReviewFromElements(elements []Element) *Review {
	return &Review{
		elements: elements,
		reverted: make(RevertSet),
		known:    AllHunks(elements),
	}
}

// Elements returns the grouped elements under review. Callers must not modify them.
func (r *Review) Elements() []Element {
	return r.elements
}

// Len is the number of hunks.
func (r *Review) Len() int {
	return len(r.known)
}

// IsReverted reports whether hunk i is currently reverted.
func (r *Review) IsReverted(i int) bool {
	return r.reverted.Has(i)
}

// Reverted returns a copy of the current revert set.
func (r *Review) Reverted() RevertSet {
	out := make(RevertSet, len(r.reverted))
	for i, ok := range r.reverted {
		if ok {
			out[i] = true
		}
	}
	return out
}

// Revert marks hunk i reverted. Unknown indices are ignored.
func (r *Review) Revert(i int) {
	if r.valid(i) {
		r.reverted[i] = true
	}
}

// Keep marks hunk i kept (not reverted).
func (r *Review) Keep(i int) {
	delete(r.reverted, i)
}

// Toggle flips hunk i and returns whether it is now reverted. Unknown indices are ignored and report false.
func (r *Review) Toggle(i int) bool {
	if !r.valid(i) {
		return false
	}
	if r.reverted.Has(i) {
		delete(r.reverted, i)
		return false
	}
	r.reverted[i] = true
	return true
}

// Apply reverts every valid index in s, on top of the current choices.
func (r *Review) Apply(s RevertSet) {
	for i, ok := range s {
		if ok {
			r.Revert(i)
		}
	}
}

// RevertAll reverts every hunk; Text then returns the original.
func (r *Review) RevertAll() {
	for i := range r.known {
		r.reverted[i] = true
	}
}

// KeepAll clears every revert; Text then returns the retranslation.
func (r *Review) KeepAll() {
	r.reverted = make(RevertSet)
}

// Text rebuilds the text for the current choices.
func (r *Review) Text() string {
	return RebuildText(r.elements, r.reverted)
}

func (r *Review) valid(i int) bool {
	return r.known.Has(i)
}
