package diff

import "unicode/utf8"

// Stats summarizes a diff.
type Stats struct {
	EqualRunes   int `json:"equal_runes"`
	RemovedRunes int `json:"removed_runes"`
	AddedRunes   int `json:"added_runes"`
	Changes      int `json:"changes"` // Runs of non-equal segments (ie, what hunk grouping will produce).
}

// Changed reports whether the two texts differ at all.
func (s Stats) Changed() bool {
	return s.Changes > 0
}

// ComputeStats counts runes per kind and change runs in segments.
func ComputeStats(segments []Segment) Stats {
	var st Stats
	inChange := false
	for _, s := range segments {
		n := utf8.RuneCountInString(s.Text)
		switch s.Kind {
		case KindEqual:
			st.EqualRunes += n
			inChange = false
			continue
		case KindRemoved:
			st.RemovedRunes += n
		case KindAdded:
			st.AddedRunes += n
		}
		if !inChange {
			st.Changes++
			inChange = true
		}
	}
	return st
}
