package hunk

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RevertSet is the set of hunk indices to revert to their original wording. A nil RevertSet is empty and valid.
type RevertSet map[int]bool

// NewRevertSet returns a set containing indices.
func NewRevertSet(indices ...int) RevertSet {
	s := make(RevertSet, len(indices))
	for _, i := range indices {
		s[i] = true
	}
	return s
}

// AllHunks returns a set containing the index of every hunk in elements.
func AllHunks(elements []Element) RevertSet {
	s := make(RevertSet)
	for _, h := range Hunks(elements) {
		s[h.Index] = true
	}
	return s
}

// Has reports whether i is in s.
func (s RevertSet) Has(i int) bool {
	return s[i]
}

// Sorted returns the indices in s in increasing order.
func (s RevertSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i, ok := range s {
		if ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// String formats s in the form accepted by ParseRevertSet, collapsing consecutive indices into ranges (ex: "0,2-4").
func (s RevertSet) String() string {
	idx := s.Sorted()
	var parts []string
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && idx[j+1] == idx[j]+1 {
			j++
		}
		if j == i {
			parts = append(parts, strconv.Itoa(idx[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", idx[i], idx[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ",")
}

// maxRangeLen bounds a single "a-b" range so user input cannot allocate without limit.
const maxRangeLen = 1 << 16

// ParseRevertSet parses a comma-separated list of non-negative indices and inclusive ranges (ex: "0,2-4"). Whitespace around items is ignored; the empty string is the empty set.
func ParseRevertSet(s string) (RevertSet, error) {
	out := make(RevertSet)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("empty item in revert list %q", s)
		}
		lo, hi, isRange := strings.Cut(item, "-")
		start, err := parseIndex(lo)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parseIndex(hi); err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid range %q: end before start", item)
			}
			if end-start >= maxRangeLen {
				return nil, fmt.Errorf("invalid range %q: too large", item)
			}
		}
		for i := start; i <= end; i++ {
			out[i] = true
		}
	}
	return out, nil
}

func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid hunk index %q", s)
	}
	return n, nil
}
