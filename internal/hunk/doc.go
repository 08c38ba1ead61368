// Package hunk groups diff segments into addressable hunks and rebuilds hybrid texts from them.
//
// GroupIntoElements turns a segment slice into Elements: Equal elements carry unchanged text verbatim, Hunk elements carry one run of Removed segments followed by one run of Added
// segments. Hunks are numbered 0, 1, 2, ... in order of appearance.
//
// RebuildText walks the elements and emits, per hunk, the Added text (the default, keeping the new wording) or the Removed text (when the hunk's index is in the RevertSet). Reverting
// every hunk reproduces the original; reverting none reproduces the retranslation.
//
// Hunk indices are handles scoped to one GroupIntoElements call. They are not stable across different diffs.
package hunk
