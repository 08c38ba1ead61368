package diff

import "fmt"

// Kind says which side(s) of a diff a Segment belongs to.
type Kind int

const (
	KindEqual   Kind = iota // In both texts.
	KindRemoved             // Only in the original text.
	KindAdded               // Only in the retranslated text.
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindRemoved:
		return "removed"
	case KindAdded:
		return "added"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText lets Kind serialize as "equal"/"removed"/"added".
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindEqual, KindRemoved, KindAdded:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("diff: invalid kind %d", int(k))
}

// UnmarshalText is the inverse of MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "equal":
		*k = KindEqual
	case "removed":
		*k = KindRemoved
	case "added":
		*k = KindAdded
	default:
		return fmt.Errorf("diff: unknown kind %q", string(b))
	}
	return nil
}

// Segment is a maximal typed span of text in a diff.
type Segment struct {
	Text string `json:"text"`
	Kind Kind   `json:"type"`
}

// OriginalText concatenates the Equal and Removed segments, which reproduces the original input.
func OriginalText(segments []Segment) string {
	return joinKinds(segments, KindRemoved)
}

// RetranslatedText concatenates the Equal and Added segments, which reproduces the retranslated input.
func RetranslatedText(segments []Segment) string {
	return joinKinds(segments, KindAdded)
}

func joinKinds(segments []Segment, side Kind) string {
	n := 0
	for _, s := range segments {
		if s.Kind == KindEqual || s.Kind == side {
			n += len(s.Text)
		}
	}
	b := make([]byte, 0, n)
	for _, s := range segments {
		if s.Kind == KindEqual || s.Kind == side {
			b = append(b, s.Text...)
		}
	}
	return string(b)
}
