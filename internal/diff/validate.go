package diff

import (
	"fmt"
	"strings"
)

// Validate checks segments against the diff invariants for the given inputs and returns an error describing the first violation. ComputeDiff output always validates; Validate exists
// for hand-built segment slices and for tests.
func Validate(segments []Segment, original, retranslated string) error {
	var oldConcat, newConcat strings.Builder
	for i, s := range segments {
		switch s.Kind {
		case KindEqual:
			oldConcat.WriteString(s.Text)
			newConcat.WriteString(s.Text)
		case KindRemoved:
			oldConcat.WriteString(s.Text)
		case KindAdded:
			newConcat.WriteString(s.Text)
		default:
			return fmt.Errorf("segment[%d]: invalid kind %d", i, int(s.Kind))
		}

		if s.Text == "" {
			return fmt.Errorf("segment[%d]: empty %s text", i, s.Kind)
		}
		if i > 0 {
			prev := segments[i-1]
			if prev.Kind == s.Kind {
				return fmt.Errorf("segment[%d]: adjacent %s segments", i, s.Kind)
			}
			if prev.Kind == KindAdded && s.Kind == KindRemoved {
				return fmt.Errorf("segment[%d]: removed segment follows added segment", i)
			}
		}
	}

	if oldConcat.String() != original {
		return fmt.Errorf("diff: equal+removed segments do not reconstruct the original")
	}
	if newConcat.String() != retranslated {
		return fmt.Errorf("diff: equal+added segments do not reconstruct the retranslation")
	}
	return nil
}
