// Package diff computes the structural difference between an original text and a re-generated (retranslated) version of it.
//
// Representation: ComputeDiff returns an ordered slice of Segments. Each Segment has a Kind:
//   - KindEqual: text present, unchanged, in both inputs
//   - KindRemoved: text present only in the original
//   - KindAdded: text present only in the retranslation
//
// Invariants:
//   - concat(segments with Kind in {Equal, Removed}) == original
//   - concat(segments with Kind in {Equal, Added}) == retranslated
//   - No segment has empty Text.
//   - No two adjacent segments share a Kind. Within a run of changes, the Removed segment precedes the Added segment.
//
// Granularity: the comparison unit is chosen by package segmenter from the language code (characters for Japanese and Simplified Chinese, UAX #29 words otherwise). Alignment is Myers'
// algorithm as implemented by diffmatchpatch, run over interned tokens, so changes never split a token.
//
// Determinism: there is no diff deadline, so identical inputs always produce identical segments.
//
// Getting a diff:
//
//	segs := diff.ComputeDiff("The cat sat", "The dog sat", "en")
//	fmt.Println(diff.RenderInline(segs, false)) // The [-cat-]{+dog+} sat
package diff
